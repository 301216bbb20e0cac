package discount

import (
	"time"

	"github.com/lib/pq"
)

// Code types. "100%" makes the class free outright; "%" only does so at or
// above 100; "CHF" is a fixed amount and never frees a class.
const (
	TypeFull    = "100%"
	TypePercent = "%"
	TypeAmount  = "CHF"
)

type DiscountCode struct {
	ID            string         `db:"id" json:"id"`
	Code          string         `db:"code" json:"code"`
	Type          string         `db:"type" json:"type"`
	Value         float64        `db:"value" json:"value"`
	AssignedEmail *string        `db:"assigned_email" json:"assignedEmail,omitempty"`
	Active        bool           `db:"active" json:"active"`
	Used          int            `db:"used" json:"used"`
	MaxUses       *int           `db:"max_uses" json:"maxUses,omitempty"`
	Courses       pq.StringArray `db:"courses" json:"courses,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

type ValidateRequest struct {
	Code     string `json:"code" binding:"required"`
	Email    string `json:"email" binding:"required"`
	CourseID string `json:"courseId" binding:"required"`
}

type ValidateResponse struct {
	Valid   bool          `json:"valid"`
	Message string        `json:"message,omitempty"`
	Code    *DiscountCode `json:"code,omitempty"`
}

type CreateCodeRequest struct {
	Code          string   `json:"code" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=100% % CHF"`
	Value         float64  `json:"value" binding:"min=0"`
	AssignedEmail *string  `json:"assignedEmail"`
	MaxUses       *int     `json:"maxUses"`
	Courses       []string `json:"courses"`
}
