package layout

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// PoolSize is the number of idle lines kept for re-use.
const PoolSize = 3

// Lines are short-lived objects with buffers worth keeping. A small number
// of idle lines is pooled, shared between goroutines.
type linePool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalLinePool *linePool

func init() {
	globalLinePool = &linePool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &Line{}, nil
		})
	globalLinePool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.MaxIdle = PoolSize
	config.BlockWhenExhausted = false
	globalLinePool.opool = pool.NewObjectPool(globalLinePool.ctx, factory, config)
}

// Obtain returns an unloaded line from the shared pool. Clients call Set
// before using it and Recycle when done.
func Obtain() *Line {
	o, err := globalLinePool.opool.BorrowObject(globalLinePool.ctx)
	if err != nil {
		T().Errorf("layout: cannot borrow line from pool: %v", err)
		return &Line{}
	}
	return o.(*Line)
}

// Recycle puts a line back into the shared pool. The line must not be used
// afterwards. Lines not obtained from the pool are dropped.
func Recycle(l *Line) {
	if l == nil {
		return
	}
	l.reset()
	if err := globalLinePool.opool.ReturnObject(globalLinePool.ctx, l); err != nil {
		T().Debugf("layout: line not returned to pool: %v", err)
	}
}

// IdleLines returns the number of lines waiting in the pool.
func IdleLines() int {
	return globalLinePool.opool.GetNumIdle()
}
