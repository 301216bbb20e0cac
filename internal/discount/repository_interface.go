package discount

import "context"

type Repository interface {
	Create(ctx context.Context, code *DiscountCode) (*DiscountCode, error)
	GetByID(ctx context.Context, id string) (*DiscountCode, error)
	FindByCode(ctx context.Context, code string) (*DiscountCode, error)
	GetAll(ctx context.Context) ([]DiscountCode, error)
	SetActive(ctx context.Context, id string, active bool) error
	IncrementUsed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
