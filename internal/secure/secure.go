// Package secure provides secure memory handling for sensitive
// byte slices (reconstructed secrets, mnemonic entropy): mlock where
// the platform supports it, plus explicit zeroing on destroy.
package secure

import (
	"runtime"
	"sync"
)

// Bytes wraps a sensitive byte slice with mlock and explicit zeroing.
type Bytes struct {
	data   []byte
	locked bool
	mu     sync.Mutex
}

// New creates a Bytes of the given size. Memory is locked if the
// platform supports it; locking failure is not fatal.
func New(size int) *Bytes {
	data := make([]byte, size)

	b := &Bytes{data: data}
	b.locked = mlock(data)

	runtime.SetFinalizer(b, func(s *Bytes) { s.Destroy() })

	return b
}

// FromSlice copies data into a new secure Bytes.
func FromSlice(data []byte) *Bytes {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice, or nil once destroyed.
func (b *Bytes) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// IsLocked reports whether the backing memory is mlocked.
func (b *Bytes) IsLocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Len returns the length of the held data.
func (b *Bytes) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Destroy zeros and unlocks the memory. Safe to call more than once.
func (b *Bytes) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}

	for i := range b.data {
		b.data[i] = 0
	}

	if b.locked {
		munlock(b.data)
		b.locked = false
	}

	b.data = nil
	runtime.SetFinalizer(b, nil)
}
