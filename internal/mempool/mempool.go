/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package mempool provides a bounded pool of fixed-size scratch buffers.

The pool caps peak memory at elemSize * count: Acquire blocks when every
buffer is lent out, which is what back-pressures a fast reader against a
slow writer in the streaming engines. Elements are allocated lazily on
first acquisition, so a short stream never pays for the full pool.

Buffers are lent exclusively to one caller and returned with Release,
normally via defer. Closing the pool wakes all blocked acquirers; they
receive an empty sentinel buffer and can unwind cleanly.
*/
package mempool

import "sync"

// Pool is a bounded reservoir of equally sized buffers.
type Pool struct {
	elemSize int
	count    int

	mu      sync.Mutex
	created int
	free    chan []byte
	closed  chan struct{}
	once    sync.Once
}

// Buffer is one pool element lent to a single caller. Len tracks the
// content size, which may be shorter than the element capacity.
type Buffer struct {
	pool *Pool
	data []byte
	n    int
	done bool
}

// New creates a pool of count buffers of elemSize bytes each.
func New(elemSize, count int) *Pool {
	return &Pool{
		elemSize: elemSize,
		count:    count,
		free:     make(chan []byte, count),
		closed:   make(chan struct{}),
	}
}

// Acquire returns a buffer, blocking while all elements are lent out.
// After Close it returns an empty buffer immediately; callers detect that
// with Empty.
func (p *Pool) Acquire() *Buffer {
	select {
	case <-p.closed:
		return &Buffer{done: true}
	default:
	}

	// Allocate lazily while the pool is under capacity.
	p.mu.Lock()
	if p.created < p.count {
		p.created++
		p.mu.Unlock()
		data := make([]byte, p.elemSize)
		return &Buffer{pool: p, data: data, n: p.elemSize}
	}
	p.mu.Unlock()

	select {
	case data := <-p.free:
		return &Buffer{pool: p, data: data, n: p.elemSize}
	case <-p.closed:
		return &Buffer{done: true}
	}
}

// Close wakes every blocked acquirer. Outstanding buffers may still be
// released afterwards; their returns are dropped.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.closed) })
}

// Data returns the full element backing slice.
func (b *Buffer) Data() []byte {
	return b.data
}

// Bytes returns the content portion of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

// Len returns the content size.
func (b *Buffer) Len() int {
	return b.n
}

// Resize sets the content size. It never reallocates.
func (b *Buffer) Resize(n int) {
	b.n = n
}

// Empty reports whether this is the sentinel returned by a closed pool.
func (b *Buffer) Empty() bool {
	return b.data == nil
}

// Release returns the element to the pool. It is idempotent so that a
// deferred release after an explicit one is harmless.
func (b *Buffer) Release() {
	if b.done || b.data == nil {
		b.done = true
		return
	}
	b.done = true
	select {
	case b.pool.free <- b.data:
	case <-b.pool.closed:
	}
	b.data = nil
}
