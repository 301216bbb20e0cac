package reservation

import "context"

type Repository interface {
	Create(ctx context.Context, res *Reservation) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	GetAll(ctx context.Context) ([]Reservation, error)
}
