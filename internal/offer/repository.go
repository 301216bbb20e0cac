package offer

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrOfferNotFound = errors.New("offer not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, id, name string, price float64, visible bool) (*Offer, error) {
	query := `
		INSERT INTO offers (id, name, price, visible)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, price, visible, created_at
	`

	var offer Offer
	err := r.db.GetContext(ctx, &offer, query, id, name, price, visible)
	if err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Offer, error) {
	query := `
		SELECT id, name, price, visible, created_at
		FROM offers
		WHERE id = $1
	`

	var offer Offer
	err := r.db.GetContext(ctx, &offer, query, id)
	if err != nil {
		return nil, ErrOfferNotFound
	}

	return &offer, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Offer, error) {
	query := `
		SELECT id, name, price, visible, created_at
		FROM offers
		ORDER BY price
	`

	var offers []Offer
	err := r.db.SelectContext(ctx, &offers, query)
	if err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *repository) GetVisible(ctx context.Context) ([]Offer, error) {
	query := `
		SELECT id, name, price, visible, created_at
		FROM offers
		WHERE visible = true
		ORDER BY price
	`

	var offers []Offer
	err := r.db.SelectContext(ctx, &offers, query)
	if err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *repository) Update(ctx context.Context, id, name string, price float64, visible bool) (*Offer, error) {
	query := `
		UPDATE offers
		SET name = $2, price = $3, visible = $4
		WHERE id = $1
		RETURNING id, name, price, visible, created_at
	`

	var offer Offer
	err := r.db.GetContext(ctx, &offer, query, id, name, price, visible)
	if err != nil {
		return nil, ErrOfferNotFound
	}

	return &offer, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}
