// Package buffers recycles bounded buffers of the preset budgets so request
// paths that load, edit and drop a buffer do not allocate one each time.
package buffers

import (
	"sync"

	"lil-go/pkg/bstr"
	"lil-go/pkg/errs"
)

// BufferPool keeps one sync.Pool per preset budget.
type BufferPool struct {
	pools map[int]*sync.Pool
}

func NewBufferPool() *BufferPool {
	p := &BufferPool{pools: make(map[int]*sync.Pool, len(bstr.Presets))}
	for _, budget := range bstr.Presets {
		p.pools[budget] = &sync.Pool{
			New: func() any {
				b, _ := bstr.New(budget)
				return b
			},
		}
	}
	return p
}

// Get returns an empty buffer of the given budget.
func (p *BufferPool) Get(budget int) (bstr.Buffer, error) {
	pool, ok := p.pools[budget]
	if !ok {
		// Let New name the exact failure.
		if _, err := bstr.New(budget); err != nil {
			return nil, err
		}
		return nil, errs.Errorf(errs.IllegalState, "no pool for budget %d", budget)
	}
	return pool.Get().(bstr.Buffer), nil
}

// Put clears b and makes it available to Get. The caller must not use b
// afterwards.
func (p *BufferPool) Put(b bstr.Buffer) {
	if b == nil {
		return
	}
	pool, ok := p.pools[bstr.Budget(b)]
	if !ok {
		return
	}
	b.Clear()
	pool.Put(b)
}

// Shared is the process-wide pool.
var Shared = NewBufferPool()

func Get(budget int) (bstr.Buffer, error) { return Shared.Get(budget) }
func Put(b bstr.Buffer)                   { Shared.Put(b) }
