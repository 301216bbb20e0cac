package offer

import "context"

type Repository interface {
	Create(ctx context.Context, id, name string, price float64, visible bool) (*Offer, error)
	GetByID(ctx context.Context, id string) (*Offer, error)
	GetAll(ctx context.Context) ([]Offer, error)
	GetVisible(ctx context.Context) ([]Offer, error)
	Update(ctx context.Context, id, name string, price float64, visible bool) (*Offer, error)
	Delete(ctx context.Context, id string) error
}
