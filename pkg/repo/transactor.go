package repo

import "context"

// Transactor scopes a unit of work. Repository calls made with the context
// handed to fn take part in the same transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
}

type TransactorFunc func(ctx context.Context, fn func(context.Context) error) error

func (f TransactorFunc) InTx(ctx context.Context, fn func(context.Context) error) error {
	return f(ctx, fn)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
