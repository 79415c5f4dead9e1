// Package msmem provides the byte-buffer allocator the msjson core routes
// its bulk allocations through. The default allocator is a plain heap
// implementation with overflow-checked sizing and allocation statistics;
// Guarded wraps any allocator with corruption and double-free detection.
package msmem

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument = errors.New("msmem: invalid argument")
	ErrOutOfMemory     = errors.New("msmem: out of memory")
	ErrOverflow        = errors.New("msmem: size overflow")
	ErrCorrupted       = errors.New("msmem: block not owned by this allocator")
	ErrDoubleFree      = errors.New("msmem: block already freed")
)

// maxAllocSize bounds a single allocation. Anything larger is treated as a
// size-arithmetic overflow rather than handed to the runtime.
const maxAllocSize = 1 << 40

// Allocator hands out byte buffers. Implementations must be safe for
// concurrent use; the callers in msjson never share a single buffer across
// goroutines.
type Allocator interface {
	// Alloc returns a buffer of exactly size bytes. size must be positive.
	Alloc(size int) ([]byte, error)
	// AllocZeroed returns a zeroed buffer of count*elemSize bytes with
	// multiplication overflow checking. count of 0 yields a nil buffer and
	// no error.
	AllocZeroed(count, elemSize int) ([]byte, error)
	// Realloc grows or shrinks buf to newSize, preserving contents up to
	// the smaller of the two sizes. A nil buf behaves like Alloc; a
	// newSize of 0 behaves like Free and yields a nil buffer.
	Realloc(buf []byte, newSize int) ([]byte, error)
	// Free releases buf. Freeing nil is a no-op.
	Free(buf []byte) error
}

// Heap is the standard allocator. The zero value is ready to use.
type Heap struct {
	bytesLive  atomic.Int64
	blocksLive atomic.Int64
}

// NewHeap returns a fresh heap allocator with zeroed statistics.
func NewHeap() *Heap { return &Heap{} }

func (h *Heap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "alloc of %d bytes", size)
	}
	if size > maxAllocSize {
		return nil, errors.Wrapf(ErrOverflow, "alloc of %d bytes", size)
	}
	buf := make([]byte, size)
	h.bytesLive.Add(int64(size))
	h.blocksLive.Add(1)
	return buf, nil
}

func (h *Heap) AllocZeroed(count, elemSize int) ([]byte, error) {
	if count < 0 || elemSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "alloc of %d x %d bytes", count, elemSize)
	}
	if count == 0 {
		return nil, nil
	}
	if count > maxAllocSize/elemSize {
		return nil, errors.Wrapf(ErrOverflow, "alloc of %d x %d bytes", count, elemSize)
	}
	// make already zeroes.
	return h.Alloc(count * elemSize)
}

func (h *Heap) Realloc(buf []byte, newSize int) ([]byte, error) {
	if buf == nil {
		return h.Alloc(newSize)
	}
	if newSize == 0 {
		return nil, h.Free(buf)
	}
	if newSize < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "realloc to %d bytes", newSize)
	}
	grown, err := h.Alloc(newSize)
	if err != nil {
		return nil, err
	}
	copy(grown, buf)
	if err := h.Free(buf); err != nil {
		return nil, err
	}
	return grown, nil
}

func (h *Heap) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	h.bytesLive.Add(-int64(len(buf)))
	h.blocksLive.Add(-1)
	return nil
}

// Stats reports bytes and blocks handed out and not yet freed.
func (h *Heap) Stats() (bytesLive, blocksLive int64) {
	return h.bytesLive.Load(), h.blocksLive.Load()
}

var (
	defaultOnce sync.Once
	defaultHeap *Heap
)

// Default returns the shared process-wide allocator. It is initialized on
// first use, lives for the process duration and is never torn down.
func Default() Allocator {
	defaultOnce.Do(func() {
		defaultHeap = NewHeap()
	})
	return defaultHeap
}
