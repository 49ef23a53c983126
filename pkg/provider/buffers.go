package provider

import (
	"iter"
	"slices"
	"strings"
)

// ToolCallBuffer tracks incremental tool call argument assembly across
// multiple stream chunks for a single tool call.
type ToolCallBuffer struct {
	ID   string
	Name string
	Args strings.Builder
}

// Arguments returns the accumulated arguments, or "{}" when none arrived.
func (b *ToolCallBuffer) Arguments() string {
	if b.Args.Len() == 0 {
		return "{}"
	}
	return b.Args.String()
}

// SetArguments replaces the accumulated arguments.
func (b *ToolCallBuffer) SetArguments(s string) {
	b.Args.Reset()
	b.Args.WriteString(s)
}

// ToolBuffers maps a protocol-specific key (chunk index or item id) to the
// tool call being assembled. Iteration follows insertion order so flushing
// is deterministic.
type ToolBuffers[K comparable] struct {
	keys []K
	m    map[K]*ToolCallBuffer
}

// NewToolBuffers returns an empty buffer map.
func NewToolBuffers[K comparable]() *ToolBuffers[K] {
	return &ToolBuffers[K]{m: make(map[K]*ToolCallBuffer)}
}

// Get returns the buffer stored under key.
func (b *ToolBuffers[K]) Get(key K) (*ToolCallBuffer, bool) {
	buf, ok := b.m[key]
	return buf, ok
}

// Add stores a new buffer under key and returns it. An existing buffer for
// the key is replaced and moves to the end of the iteration order.
func (b *ToolBuffers[K]) Add(key K, id, name string) *ToolCallBuffer {
	if _, ok := b.m[key]; ok {
		b.Delete(key)
	}
	buf := &ToolCallBuffer{ID: id, Name: name}
	b.keys = append(b.keys, key)
	b.m[key] = buf
	return buf
}

// Delete removes the buffer stored under key.
func (b *ToolBuffers[K]) Delete(key K) {
	if _, ok := b.m[key]; !ok {
		return
	}
	delete(b.m, key)
	b.keys = slices.DeleteFunc(b.keys, func(k K) bool { return k == key })
}

// Len returns the number of buffers.
func (b *ToolBuffers[K]) Len() int {
	return len(b.keys)
}

// All iterates over the buffers in insertion order.
func (b *ToolBuffers[K]) All() iter.Seq2[K, *ToolCallBuffer] {
	return func(yield func(K, *ToolCallBuffer) bool) {
		for _, k := range b.keys {
			if !yield(k, b.m[k]) {
				return
			}
		}
	}
}

// Clear removes every buffer.
func (b *ToolBuffers[K]) Clear() {
	b.keys = nil
	clear(b.m)
}
