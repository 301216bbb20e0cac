package booking

import (
	"time"

	"afroboost/internal/discount"
	"afroboost/internal/reservation"
)

// State names the steps of the reservation workflow. A session moves
// forward only through Workflow methods; nothing mutates a BookingState
// in place.
type State string

const (
	StateIdle                       State = "idle"
	StateCourseSelected             State = "courseSelected"
	StateDateSelected               State = "dateSelected"
	StateOfferSelected              State = "offerSelected"
	StateReadyToSubmit              State = "readyToSubmit"
	StateFreeSubmitting             State = "freeSubmitting"
	StateAwaitingExternalPayment    State = "awaitingExternalPayment"
	StateAwaitingManualConfirmation State = "awaitingManualConfirmation"
	StatePersisting                 State = "persisting"
	StateNotifiedSuccess            State = "notifiedSuccess"
)

// Selections is everything the customer has picked so far. It is copied,
// never shared, when a transition produces the next BookingState.
type Selections struct {
	CourseID       string `json:"courseId,omitempty"`
	SessionDate    string `json:"sessionDate,omitempty"`
	OfferID        string `json:"offerId,omitempty"`
	IsExistingUser bool   `json:"isExistingUser"`
	UserID         string `json:"userId,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Whatsapp       string `json:"whatsapp,omitempty"`
	DiscountCode   string `json:"discountCode,omitempty"`
	Quantity       int    `json:"quantity"`
	AcceptedTerms  bool   `json:"acceptedTerms"`
}

// BookingState is one immutable snapshot of a workflow session.
type BookingState struct {
	State      State      `json:"state"`
	Selections Selections `json:"selections"`

	// Message is the transient user-facing text from the last rejected
	// transition, cleared on the next successful one.
	Message string `json:"message,omitempty"`

	// LastReservation is set once the workflow reaches NotifiedSuccess.
	LastReservation *reservation.Reservation `json:"lastReservation,omitempty"`

	// PaymentURL is exposed while awaiting an external payment.
	PaymentURL     string `json:"paymentUrl,omitempty"`
	PaymentChannel string `json:"paymentChannel,omitempty"`

	// ConfirmPromptVisible turns on once the pacing timer fires after the
	// payment link was opened.
	ConfirmPromptVisible bool `json:"confirmPromptVisible"`
}

// PendingReservation is the unpersisted candidate held between opening the
// payment link and the customer's manual confirmation. It lives only in the
// session store.
type PendingReservation struct {
	Candidate       reservation.Reservation
	AppliedDiscount *discount.DiscountCode
	HeldSince       time.Time
}
