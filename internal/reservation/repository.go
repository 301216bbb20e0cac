package reservation

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrReservationNotFound = errors.New("reservation not found")

const selectColumns = `id, reservation_code, user_id, user_name, user_email, user_whatsapp,
	course_id, course_name, course_time, datetime, offer_id, offer_name,
	price, quantity, total_price, discount_code, discount_type, discount_value, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, res *Reservation) (*Reservation, error) {
	query := `
		INSERT INTO reservations (
			id, reservation_code, user_id, user_name, user_email, user_whatsapp,
			course_id, course_name, course_time, datetime, offer_id, offer_name,
			price, quantity, total_price, discount_code, discount_type, discount_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + selectColumns

	var created Reservation
	err := r.db.GetContext(ctx, &created, query,
		res.ID, res.ReservationCode, res.UserID, res.UserName, res.UserEmail, res.UserWhatsapp,
		res.CourseID, res.CourseName, res.CourseTime, res.Datetime, res.OfferID, res.OfferName,
		res.Price, res.Quantity, res.TotalPrice, res.DiscountCode, res.DiscountType, res.DiscountValue)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations WHERE id = $1`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		return nil, ErrReservationNotFound
	}

	return &res, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Reservation, error) {
	query := `SELECT ` + selectColumns + ` FROM reservations ORDER BY created_at DESC`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
