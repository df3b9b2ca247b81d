package loginlogs

import "context"

type Repository interface {
	// Create appends a login record. The table is write-only from the
	// application's point of view.
	Create(ctx context.Context, email string, method string) error
}
