package course

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourseNotFound = errors.New("course not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*Course, error) {
	query := `
		INSERT INTO courses (id, name, weekday, time, location_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, weekday, time, location_name, created_at
	`

	var course Course
	err := r.db.GetContext(ctx, &course, query, id, name, weekday, courseTime, locationName)
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Course, error) {
	query := `
		SELECT id, name, weekday, time, location_name, created_at
		FROM courses
		WHERE id = $1
	`

	var course Course
	err := r.db.GetContext(ctx, &course, query, id)
	if err != nil {
		return nil, ErrCourseNotFound
	}

	return &course, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Course, error) {
	query := `
		SELECT id, name, weekday, time, location_name, created_at
		FROM courses
		ORDER BY weekday, time
	`

	var courses []Course
	err := r.db.SelectContext(ctx, &courses, query)
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *repository) Update(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*Course, error) {
	query := `
		UPDATE courses
		SET name = $2, weekday = $3, time = $4, location_name = $5
		WHERE id = $1
		RETURNING id, name, weekday, time, location_name, created_at
	`

	var course Course
	err := r.db.GetContext(ctx, &course, query, id, name, weekday, courseTime, locationName)
	if err != nil {
		return nil, ErrCourseNotFound
	}

	return &course, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCourseNotFound
	}

	return nil
}
