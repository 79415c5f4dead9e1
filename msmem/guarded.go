package msmem

import (
	"sync"

	"github.com/pkg/errors"
)

// Guarded wraps an Allocator and validates ownership of every buffer passed
// back to it. Releasing a buffer it never handed out reports ErrCorrupted;
// releasing the same buffer twice reports ErrDoubleFree. Buffers are tracked
// by base address, so callers must pass back the exact slice they received.
type Guarded struct {
	mu    sync.Mutex
	inner Allocator
	live  map[*byte]int
	freed map[*byte]struct{}
}

// NewGuarded wraps inner, or the default allocator if inner is nil.
func NewGuarded(inner Allocator) *Guarded {
	if inner == nil {
		inner = Default()
	}
	return &Guarded{
		inner: inner,
		live:  make(map[*byte]int),
		freed: make(map[*byte]struct{}),
	}
}

func (g *Guarded) Alloc(size int) ([]byte, error) {
	buf, err := g.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	g.track(buf)
	return buf, nil
}

func (g *Guarded) AllocZeroed(count, elemSize int) ([]byte, error) {
	buf, err := g.inner.AllocZeroed(count, elemSize)
	if err != nil || buf == nil {
		return nil, err
	}
	g.track(buf)
	return buf, nil
}

func (g *Guarded) Realloc(buf []byte, newSize int) ([]byte, error) {
	if buf == nil {
		return g.Alloc(newSize)
	}
	if newSize == 0 {
		return nil, g.Free(buf)
	}
	g.mu.Lock()
	key := &buf[0]
	if _, ok := g.live[key]; !ok {
		_, wasFreed := g.freed[key]
		g.mu.Unlock()
		if wasFreed {
			return nil, errors.Wrap(ErrDoubleFree, "realloc")
		}
		return nil, errors.Wrap(ErrCorrupted, "realloc")
	}
	g.mu.Unlock()

	grown, err := g.inner.Realloc(buf, newSize)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	delete(g.live, key)
	g.freed[key] = struct{}{}
	g.live[&grown[0]] = len(grown)
	delete(g.freed, &grown[0])
	g.mu.Unlock()
	return grown, nil
}

func (g *Guarded) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := &buf[0]
	if _, ok := g.live[key]; ok {
		delete(g.live, key)
		g.freed[key] = struct{}{}
		return g.inner.Free(buf)
	}
	if _, ok := g.freed[key]; ok {
		return errors.Wrap(ErrDoubleFree, "free")
	}
	return errors.Wrap(ErrCorrupted, "free")
}

// LiveBlocks reports the number of buffers not yet freed.
func (g *Guarded) LiveBlocks() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

func (g *Guarded) track(buf []byte) {
	g.mu.Lock()
	g.live[&buf[0]] = len(buf)
	delete(g.freed, &buf[0])
	g.mu.Unlock()
}
