package payment

import "time"

// Links holds the coach-configured payment endpoints. A blank field means
// the channel is not offered.
type Links struct {
	Stripe        string    `db:"stripe" json:"stripe"`
	Paypal        string    `db:"paypal" json:"paypal"`
	Twint         string    `db:"twint" json:"twint"`
	CoachWhatsapp string    `db:"coach_whatsapp" json:"coachWhatsapp"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

type UpdateLinksRequest struct {
	Stripe        string `json:"stripe"`
	Paypal        string `json:"paypal"`
	Twint         string `json:"twint"`
	CoachWhatsapp string `json:"coachWhatsapp"`
}

// Channel identifies the payment option picked for a reservation.
type Channel string

const (
	ChannelTwint  Channel = "twint"
	ChannelStripe Channel = "stripe"
	ChannelPaypal Channel = "paypal"
)
