package user

import "context"

type Repository interface {
	Create(ctx context.Context, id, name, email, whatsapp string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]User, error)
}
