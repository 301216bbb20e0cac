package payment

import "context"

type Repository interface {
	Get(ctx context.Context) (*Links, error)
	Update(ctx context.Context, links *Links) (*Links, error)
}
