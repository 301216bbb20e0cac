package course

import "context"

type Repository interface {
	Create(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*Course, error)
	GetByID(ctx context.Context, id string) (*Course, error)
	GetAll(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*Course, error)
	Delete(ctx context.Context, id string) error
}
