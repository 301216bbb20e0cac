package user

import "time"

type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Whatsapp  string    `db:"whatsapp" json:"whatsapp"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Whatsapp string `json:"whatsapp"`
}

// Identity is the resolved customer for a booking attempt. Existing tells
// whether it came from a stored profile; free bookings require Existing.
type Identity struct {
	ID       string
	Name     string
	Email    string
	Whatsapp string
	Existing bool
}
