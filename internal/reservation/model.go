package reservation

import "time"

// Reservation is a persisted booking. Immutable once created; totalPrice is
// zero only when a qualifying free code was applied.
type Reservation struct {
	ID              string    `db:"id" json:"id"`
	ReservationCode string    `db:"reservation_code" json:"reservationCode"`
	UserID          string    `db:"user_id" json:"userId"`
	UserName        string    `db:"user_name" json:"userName"`
	UserEmail       string    `db:"user_email" json:"userEmail"`
	UserWhatsapp    string    `db:"user_whatsapp" json:"userWhatsapp"`
	CourseID        string    `db:"course_id" json:"courseId"`
	CourseName      string    `db:"course_name" json:"courseName"`
	CourseTime      string    `db:"course_time" json:"courseTime"`
	Datetime        time.Time `db:"datetime" json:"datetime"`
	OfferID         string    `db:"offer_id" json:"offerId"`
	OfferName       string    `db:"offer_name" json:"offerName"`
	Price           float64   `db:"price" json:"price"`
	Quantity        int       `db:"quantity" json:"quantity"`
	TotalPrice      float64   `db:"total_price" json:"totalPrice"`
	DiscountCode    *string   `db:"discount_code" json:"discountCode,omitempty"`
	DiscountType    *string   `db:"discount_type" json:"discountType,omitempty"`
	DiscountValue   *float64  `db:"discount_value" json:"discountValue,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// CreateRequest carries the candidate fields; id, reservationCode and
// createdAt are assigned server-side.
type CreateRequest struct {
	UserID        string   `json:"userId" binding:"required"`
	UserName      string   `json:"userName" binding:"required"`
	UserEmail     string   `json:"userEmail" binding:"required,email"`
	UserWhatsapp  string   `json:"userWhatsapp" binding:"required"`
	CourseID      string   `json:"courseId" binding:"required"`
	CourseName    string   `json:"courseName" binding:"required"`
	CourseTime    string   `json:"courseTime" binding:"required"`
	Datetime      string   `json:"datetime" binding:"required"`
	OfferID       string   `json:"offerId" binding:"required"`
	OfferName     string   `json:"offerName" binding:"required"`
	Price         float64  `json:"price" binding:"min=0"`
	Quantity      int      `json:"quantity" binding:"required,min=1"`
	TotalPrice    float64  `json:"totalPrice" binding:"min=0"`
	DiscountCode  *string  `json:"discountCode"`
	DiscountType  *string  `json:"discountType"`
	DiscountValue *float64 `json:"discountValue"`
}
