package offer

import "time"

// Offer is a pricing option for a booking. Only visible offers are
// selectable by customers; hidden ones stay available to the coach.
type Offer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     float64   `db:"price" json:"price"`
	Visible   bool      `db:"visible" json:"visible"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateOfferRequest struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"min=0"`
	Visible *bool   `json:"visible"`
}

type UpdateOfferRequest struct {
	Name    string  `json:"name" binding:"required"`
	Price   float64 `json:"price" binding:"min=0"`
	Visible *bool   `json:"visible"`
}
