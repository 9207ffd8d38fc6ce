package repositories

import (
	"context"
)

// CounterRepository generates wrapping sequence numbers. Next must be a
// single atomic read-modify-write at the storage layer: two concurrent
// callers must never receive the same value.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int, error)
	Current(ctx context.Context, name string) (int, error)
}
