package msjson

import (
	"github.com/elrt/MotiveSyz/msmem"
)

// DefaultMaxDepth is the nesting limit applied when no options are given.
const DefaultMaxDepth = 256

// Options configures parsing. The zero value means: default allocator,
// unlimited depth, strict comments-off JSON.
type Options struct {
	// Allocator used for bulk byte buffers. Nil selects msmem.Default().
	Allocator msmem.Allocator
	// MaxDepth bounds how many arrays/objects may be open at once.
	// 0 means unlimited.
	MaxDepth int
	// AllowComments permits // line and /* */ block comments wherever
	// whitespace is allowed.
	AllowComments bool
}

// DefaultOptions returns the options applied when Parse receives nil:
// default allocator, MaxDepth of DefaultMaxDepth, comments off.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func (o Options) allocator() msmem.Allocator {
	if o.Allocator == nil {
		return msmem.Default()
	}
	return o.Allocator
}
