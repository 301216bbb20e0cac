package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Get returns the single payment link row. An empty table yields a zero
// Links value rather than an error so a fresh install still serves the
// booking flow.
func (r *repository) Get(ctx context.Context) (*Links, error) {
	query := `
		SELECT stripe, paypal, twint, coach_whatsapp, updated_at
		FROM payment_links
		WHERE id = 1
	`

	var links Links
	err := r.db.GetContext(ctx, &links, query)
	if errors.Is(err, sql.ErrNoRows) {
		return &Links{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &links, nil
}

func (r *repository) Update(ctx context.Context, links *Links) (*Links, error) {
	query := `
		INSERT INTO payment_links (id, stripe, paypal, twint, coach_whatsapp, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET stripe = $1, paypal = $2, twint = $3, coach_whatsapp = $4, updated_at = NOW()
		RETURNING stripe, paypal, twint, coach_whatsapp, updated_at
	`

	var updated Links
	err := r.db.GetContext(ctx, &updated, query,
		links.Stripe, links.Paypal, links.Twint, links.CoachWhatsapp)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
