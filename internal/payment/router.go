package payment

import (
	"strings"

	"afroboost/internal/metrics"
)

// MsgPaymentRequired is shown to the customer when no payment channel is
// configured and the reservation cannot proceed.
const MsgPaymentRequired = "Paiement requis – réservation impossible sans paiement configuré."

// UnavailableError signals that a paid reservation was attempted with no
// payment link configured.
type UnavailableError struct{}

func (e *UnavailableError) Error() string {
	return MsgPaymentRequired
}

var ErrPaymentUnavailable = &UnavailableError{}

// Redirect is the single payment destination chosen for a reservation.
type Redirect struct {
	Channel Channel `json:"channel"`
	URL     string  `json:"url"`
}

// ChooseChannel picks exactly one payment destination from the configured
// links. Twint wins over Stripe, Stripe over PayPal. Returns
// ErrPaymentUnavailable when every link is blank.
func ChooseChannel(links *Links) (*Redirect, error) {
	if links != nil {
		candidates := []struct {
			channel Channel
			url     string
		}{
			{ChannelTwint, links.Twint},
			{ChannelStripe, links.Stripe},
			{ChannelPaypal, links.Paypal},
		}

		for _, c := range candidates {
			if strings.TrimSpace(c.url) != "" {
				metrics.RecordPaymentRedirect(string(c.channel))
				return &Redirect{Channel: c.channel, URL: c.url}, nil
			}
		}
	}

	return nil, ErrPaymentUnavailable
}
