package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"afroboost/internal/reservation"
)

// Notification targets. The coach gets "Nouvelle réservation", the customer
// "Confirmation de réservation".
const (
	TargetCoach    = "coach"
	TargetCustomer = "user"
)

var frenchWeekdays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

// FormatDateFR renders a date the Swiss-French way: long weekday plus
// DD.MM.YYYY, e.g. "lundi, 02.03.2026".
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%s, %02d.%02d.%04d", frenchWeekdays[t.Weekday()], t.Day(), int(t.Month()), t.Year())
}

// FormatDatetimeFR renders a full session moment, e.g.
// "lundi, 02.03.2026 à 18:30".
func FormatDatetimeFR(t time.Time) string {
	return FormatDateFR(t) + " à " + t.Format("15:04")
}

// BuildMessage assembles the WhatsApp summary for a persisted reservation.
// Optional lines (customer number, quantity above one, non-zero total,
// discount code) are omitted when absent.
func BuildMessage(target string, res *reservation.Reservation) string {
	header := "Confirmation de réservation"
	if target == TargetCoach {
		header = "Nouvelle réservation"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎧 %s Afroboost\n\n", header)
	fmt.Fprintf(&b, "👤 Nom : %s\n", res.UserName)
	fmt.Fprintf(&b, "📧 Email : %s\n", res.UserEmail)
	if strings.TrimSpace(res.UserWhatsapp) != "" {
		fmt.Fprintf(&b, "📱 WhatsApp : %s\n", res.UserWhatsapp)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "💰 Offre : %s (CHF %s)\n", res.OfferName, reservation.FormatAmount(res.Price))
	if res.Quantity > 1 {
		fmt.Fprintf(&b, "🔢 Quantité : %d\n", res.Quantity)
	}
	if res.TotalPrice > 0 {
		fmt.Fprintf(&b, "💵 Total : CHF %s\n", reservation.FormatAmount(res.TotalPrice))
	}
	fmt.Fprintf(&b, "📅 Cours : %s\n", res.CourseName)
	fmt.Fprintf(&b, "🕐 Date : %s", FormatDatetimeFR(res.Datetime))
	if res.ReservationCode != "" {
		fmt.Fprintf(&b, "\n🎫 Code réservation : %s", res.ReservationCode)
	}
	if res.DiscountCode != nil && *res.DiscountCode != "" {
		fmt.Fprintf(&b, "\n🎟️ Code promo : %s", *res.DiscountCode)
	}

	return b.String()
}

// WhatsAppLink builds the wa.me deep link for a phone number and message.
// Every non-digit character is stripped from the number.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	// encodeURIComponent-style escaping, spaces as %20 rather than +.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, encoded)
}
