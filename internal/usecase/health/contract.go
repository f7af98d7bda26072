package health

import "context"

// StoreChecker reports record store availability and size.
type StoreChecker interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
