package storage

import "context"

// Store persists a single index value of type T.
type Store[T any] interface {
	// With loads T under the lock and passes it to fn. Changes are discarded.
	With(ctx context.Context, fn func(*T) error) error
	// Update loads T under the lock, passes it to fn and saves it if fn
	// returns nil.
	Update(ctx context.Context, fn func(*T) error) error
}

// Initer is implemented by index types that need their maps allocated
// after loading.
type Initer interface {
	Init()
}
