package discount

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCodeNotFound = errors.New("discount code not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, code *DiscountCode) (*DiscountCode, error) {
	query := `
		INSERT INTO discount_codes (id, code, type, value, assigned_email, active, max_uses, courses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, code, type, value, assigned_email, active, used, max_uses, courses, created_at
	`

	var created DiscountCode
	err := r.db.GetContext(ctx, &created, query,
		code.ID, code.Code, code.Type, code.Value, code.AssignedEmail, code.Active, code.MaxUses, code.Courses)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*DiscountCode, error) {
	query := `
		SELECT id, code, type, value, assigned_email, active, used, max_uses, courses, created_at
		FROM discount_codes
		WHERE id = $1
	`

	var code DiscountCode
	err := r.db.GetContext(ctx, &code, query, id)
	if err != nil {
		return nil, ErrCodeNotFound
	}

	return &code, nil
}

func (r *repository) FindByCode(ctx context.Context, rawCode string) (*DiscountCode, error) {
	query := `
		SELECT id, code, type, value, assigned_email, active, used, max_uses, courses, created_at
		FROM discount_codes
		WHERE UPPER(code) = UPPER($1)
	`

	var code DiscountCode
	err := r.db.GetContext(ctx, &code, query, rawCode)
	if err != nil {
		return nil, ErrCodeNotFound
	}

	return &code, nil
}

func (r *repository) GetAll(ctx context.Context) ([]DiscountCode, error) {
	query := `
		SELECT id, code, type, value, assigned_email, active, used, max_uses, courses, created_at
		FROM discount_codes
		ORDER BY created_at DESC
	`

	var codes []DiscountCode
	err := r.db.SelectContext(ctx, &codes, query)
	if err != nil {
		return nil, err
	}

	return codes, nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE discount_codes SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCodeNotFound
	}

	return nil
}

func (r *repository) IncrementUsed(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE discount_codes SET used = used + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCodeNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCodeNotFound
	}

	return nil
}
