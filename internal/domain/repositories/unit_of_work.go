package repositories

import (
	"context"
)

// UnitOfWork runs several repository calls atomically
type UnitOfWork interface {
	// Do executes fn inside one transaction. Repositories called with the
	// context passed to fn join that transaction.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
