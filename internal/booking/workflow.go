package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"afroboost/internal/course"
	"afroboost/internal/discount"
	"afroboost/internal/logger"
	"afroboost/internal/metrics"
	"afroboost/internal/notify"
	"afroboost/internal/offer"
	"afroboost/internal/payment"
	"afroboost/internal/reservation"
	"afroboost/internal/user"
)

// ConfirmPromptDelay paces the manual-confirmation gate behind the payment
// link opening. Best effort, not a synchronization primitive.
const ConfirmPromptDelay = 800 * time.Millisecond

// Transient user-facing messages for transitions that stay in place.
const (
	MsgIncompleteSelection = "Veuillez compléter votre sélection et accepter les conditions."
	MsgReservationFailure  = "Erreur lors de la réservation"
	MsgOperationInFlight   = "Une opération est déjà en cours."
	MsgNothingToConfirm    = "Aucune réservation en attente de confirmation."
)

// Notifier queues the post-persistence sends. Failures never surface here.
type Notifier interface {
	Dispatch(ctx context.Context, res *reservation.Reservation, coachPhone string)
}

// Workflow drives booking sessions through the reservation state machine.
type Workflow struct {
	store        *Store
	courses      course.Repository
	offers       offer.Repository
	users        user.Repository
	resolver     user.Resolver
	discounts    discount.Service
	payments     payment.Repository
	reservations reservation.Repository
	notifier     Notifier
	outbound     notify.Outbound

	confirmDelay time.Duration
	now          func() time.Time
}

func NewWorkflow(
	store *Store,
	courses course.Repository,
	offers offer.Repository,
	users user.Repository,
	resolver user.Resolver,
	discounts discount.Service,
	payments payment.Repository,
	reservations reservation.Repository,
	notifier Notifier,
	outbound notify.Outbound,
) *Workflow {
	return &Workflow{
		store:        store,
		courses:      courses,
		offers:       offers,
		users:        users,
		resolver:     resolver,
		discounts:    discounts,
		payments:     payments,
		reservations: reservations,
		notifier:     notifier,
		outbound:     outbound,
		confirmDelay: ConfirmPromptDelay,
		now:          time.Now,
	}
}

// SelectRequest carries partial selection updates; nil fields are left
// untouched.
type SelectRequest struct {
	CourseID       *string `json:"courseId"`
	SessionDate    *string `json:"sessionDate"`
	OfferID        *string `json:"offerId"`
	IsExistingUser *bool   `json:"isExistingUser"`
	UserID         *string `json:"userId"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Whatsapp       *string `json:"whatsapp"`
	DiscountCode   *string `json:"discountCode"`
	Quantity       *int    `json:"quantity"`
	AcceptedTerms  *bool   `json:"acceptedTerms"`
}

// Select applies a selection update. A new selection while a payment is
// pending discards the PendingReservation; it never outlives one payment
// attempt.
func (w *Workflow) Select(ctx context.Context, sessionID string, req SelectRequest) (BookingState, error) {
	s, err := w.store.Get(sessionID)
	if err != nil {
		return BookingState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(w.now())

	if s.inFlight {
		st := s.state
		st.Message = MsgOperationInFlight
		return st, nil
	}

	if s.pending != nil {
		s.pending = nil
		s.stopTimersLocked()
	}

	next := s.state
	next.Message = ""
	next.PaymentURL = ""
	next.PaymentChannel = ""
	next.ConfirmPromptVisible = false
	next.LastReservation = nil

	sel := next.Selections
	applySelect(&sel, req)

	if msg := w.validateSelections(ctx, sel, req); msg != "" {
		curr := s.state
		curr.Message = msg
		return curr, nil
	}

	next.Selections = sel
	next.State = deriveState(sel)
	s.state = next

	return next, nil
}

func applySelect(sel *Selections, req SelectRequest) {
	if req.CourseID != nil {
		sel.CourseID = *req.CourseID
		// A new course invalidates the picked date.
		sel.SessionDate = ""
	}
	if req.SessionDate != nil {
		sel.SessionDate = *req.SessionDate
	}
	if req.OfferID != nil {
		sel.OfferID = *req.OfferID
	}
	if req.IsExistingUser != nil {
		sel.IsExistingUser = *req.IsExistingUser
		if !sel.IsExistingUser {
			sel.UserID = ""
		}
	}
	if req.UserID != nil {
		sel.UserID = *req.UserID
	}
	if req.Name != nil {
		sel.Name = *req.Name
	}
	if req.Email != nil {
		sel.Email = *req.Email
	}
	if req.Whatsapp != nil {
		sel.Whatsapp = *req.Whatsapp
	}
	if req.DiscountCode != nil {
		sel.DiscountCode = *req.DiscountCode
	}
	if req.Quantity != nil {
		sel.Quantity = *req.Quantity
	}
	if req.AcceptedTerms != nil {
		sel.AcceptedTerms = *req.AcceptedTerms
	}
}

func (w *Workflow) validateSelections(ctx context.Context, sel Selections, req SelectRequest) string {
	if sel.Quantity < 1 {
		return "La quantité doit être d'au moins 1."
	}

	if req.CourseID != nil {
		if _, err := w.courses.GetByID(ctx, sel.CourseID); err != nil {
			return "Cours introuvable."
		}
	}

	if req.SessionDate != nil {
		if _, err := time.Parse("2006-01-02", sel.SessionDate); err != nil {
			return "Date de séance invalide."
		}
		if sel.CourseID == "" {
			return "Veuillez d'abord choisir un cours."
		}
		// A session is selectable only with at least one visible offer.
		visible, err := w.offers.GetVisible(ctx)
		if err != nil || len(visible) == 0 {
			return "Aucune offre disponible pour cette séance."
		}
	}

	if req.OfferID != nil {
		o, err := w.offers.GetByID(ctx, sel.OfferID)
		if err != nil || !o.Visible {
			return "Offre introuvable."
		}
	}

	return ""
}

func deriveState(sel Selections) State {
	switch {
	case sel.CourseID == "":
		return StateIdle
	case sel.SessionDate == "":
		return StateCourseSelected
	case sel.OfferID == "":
		return StateDateSelected
	case !sel.AcceptedTerms:
		return StateOfferSelected
	default:
		return StateReadyToSubmit
	}
}

// Submit runs the booking attempt: guards, identity, discount, candidate,
// then the free or paid path. Every failure leaves the session in
// ReadyToSubmit with a transient message.
func (w *Workflow) Submit(ctx context.Context, sessionID string) (BookingState, error) {
	s, err := w.store.Get(sessionID)
	if err != nil {
		return BookingState{}, err
	}

	s.mu.Lock()
	s.touch(w.now())
	if s.inFlight {
		st := s.state
		st.Message = MsgOperationInFlight
		s.mu.Unlock()
		return st, nil
	}

	sel := s.state.Selections
	if sel.CourseID == "" || sel.SessionDate == "" || sel.OfferID == "" || !sel.AcceptedTerms {
		st := failLocked(s, s.state.State, MsgIncompleteSelection)
		s.mu.Unlock()
		metrics.RecordBookingFailure("incomplete_selection")
		return st, nil
	}

	s.inFlight = true
	s.mu.Unlock()

	st, reason := w.runSubmit(ctx, s, sel)
	if reason != "" {
		metrics.RecordBookingFailure(reason)
	}
	return st, nil
}

// runSubmit performs the network round trips with only the in-flight flag
// held, the way a cooperative single-threaded submit behaves.
func (w *Workflow) runSubmit(ctx context.Context, s *Session, sel Selections) (BookingState, string) {
	crs, err := w.courses.GetByID(ctx, sel.CourseID)
	if err != nil {
		return w.failSubmit(s, MsgReservationFailure), "transport"
	}

	off, err := w.offers.GetByID(ctx, sel.OfferID)
	if err != nil {
		return w.failSubmit(s, MsgReservationFailure), "transport"
	}

	identity, err := w.resolver.Resolve(ctx, user.ResolveInput{
		IsExistingUser: sel.IsExistingUser,
		UserID:         sel.UserID,
		Name:           sel.Name,
		Email:          sel.Email,
		Whatsapp:       sel.Whatsapp,
	})
	if err != nil {
		if errors.Is(err, user.ErrMissingContactInfo) {
			return w.failSubmit(s, err.Error()), "missing_contact"
		}
		return w.failSubmit(s, MsgIncompleteSelection), "identity"
	}

	var applied *discount.DiscountCode
	if strings.TrimSpace(sel.DiscountCode) != "" {
		applied, err = w.discounts.Validate(ctx, sel.DiscountCode, identity.Email, sel.CourseID)
		if err != nil {
			var rejection *discount.RejectionError
			if errors.As(err, &rejection) {
				return w.failSubmit(s, rejection.Message), "discount_rejected"
			}
			return w.failSubmit(s, discount.MsgValidationFailure), "transport"
		}
	}

	free := discount.IsFree(applied)
	if free && !identity.Existing {
		return w.failSubmit(s, discount.MsgFreeRequiresUser), "free_requires_profile"
	}

	sessionDate, _ := time.Parse("2006-01-02", sel.SessionDate)
	datetime, err := course.SessionTime(sessionDate, crs.Time)
	if err != nil {
		return w.failSubmit(s, MsgReservationFailure), "bad_session_time"
	}

	candidate := reservation.Reservation{
		UserID:       identity.ID,
		UserName:     identity.Name,
		UserEmail:    identity.Email,
		UserWhatsapp: identity.Whatsapp,
		CourseID:     crs.ID,
		CourseName:   crs.Name,
		CourseTime:   crs.Time,
		Datetime:     datetime,
		OfferID:      off.ID,
		OfferName:    off.Name,
		Price:        off.Price,
		Quantity:     sel.Quantity,
		TotalPrice:   reservation.TotalPrice(off.Price, sel.Quantity, free),
	}
	if applied != nil {
		candidate.DiscountCode = &applied.Code
		candidate.DiscountType = &applied.Type
		candidate.DiscountValue = &applied.Value
	}

	if free {
		return w.runFreePath(ctx, s, candidate, applied)
	}

	return w.runPaidPath(ctx, s, candidate, applied, identity)
}

func (w *Workflow) runFreePath(ctx context.Context, s *Session, candidate reservation.Reservation, applied *discount.DiscountCode) (BookingState, string) {
	w.setStateTransient(s, StateFreeSubmitting)

	persisted, reason := w.persistAndNotify(ctx, candidate, applied)
	if persisted == nil {
		return w.failSubmit(s, MsgReservationFailure), reason
	}

	metrics.RecordReservation("free")
	return w.succeed(s, persisted), ""
}

func (w *Workflow) runPaidPath(ctx context.Context, s *Session, candidate reservation.Reservation, applied *discount.DiscountCode, identity *user.Identity) (BookingState, string) {
	links, err := w.payments.Get(ctx)
	if err != nil {
		return w.failSubmit(s, MsgReservationFailure), "transport"
	}

	redirect, err := payment.ChooseChannel(links)
	if err != nil {
		return w.failSubmit(s, payment.MsgPaymentRequired), "payment_unavailable"
	}

	// New customers get a profile before the payment round trip; a failure
	// here does not block the booking attempt.
	if !identity.Existing {
		if _, err := w.users.Create(ctx, identity.ID, identity.Name, identity.Email, identity.Whatsapp); err != nil {
			logger.Errorf("Failed to create user %s: %v", identity.ID, err)
		}
	}

	if err := w.outbound.Open(redirect.URL); err != nil {
		logger.Errorf("Failed to open payment link: %v", err)
	}

	s.mu.Lock()
	s.pending = &PendingReservation{
		Candidate:       candidate,
		AppliedDiscount: applied,
		HeldSince:       w.now(),
	}
	next := s.state
	next.State = StateAwaitingExternalPayment
	next.Message = ""
	next.PaymentURL = redirect.URL
	next.PaymentChannel = string(redirect.Channel)
	next.ConfirmPromptVisible = false
	s.state = next
	s.inFlight = false
	s.confirmTimer = time.AfterFunc(w.confirmDelay, func() {
		w.showConfirmPrompt(s)
	})
	s.mu.Unlock()

	return next, ""
}

func (w *Workflow) showConfirmPrompt(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.State != StateAwaitingExternalPayment || s.pending == nil {
		return
	}

	next := s.state
	next.State = StateAwaitingManualConfirmation
	next.ConfirmPromptVisible = true
	s.state = next
}

// Confirm persists the held PendingReservation. Explicit user action, never
// automatic.
func (w *Workflow) Confirm(ctx context.Context, sessionID string) (BookingState, error) {
	s, err := w.store.Get(sessionID)
	if err != nil {
		return BookingState{}, err
	}

	s.mu.Lock()
	s.touch(w.now())
	if s.inFlight {
		st := s.state
		st.Message = MsgOperationInFlight
		s.mu.Unlock()
		return st, nil
	}
	if s.pending == nil {
		st := s.state
		st.Message = MsgNothingToConfirm
		s.mu.Unlock()
		return st, nil
	}

	pending := *s.pending
	s.inFlight = true
	next := s.state
	next.State = StatePersisting
	next.Message = ""
	s.state = next
	s.mu.Unlock()

	persisted, reason := w.persistAndNotify(ctx, pending.Candidate, pending.AppliedDiscount)
	if persisted == nil {
		// The pending reservation stays; the customer may retry confirm.
		s.mu.Lock()
		curr := s.state
		curr.State = StateAwaitingManualConfirmation
		curr.Message = MsgReservationFailure
		s.state = curr
		s.inFlight = false
		s.mu.Unlock()
		metrics.RecordBookingFailure(reason)
		st := s.Snapshot()
		return st, nil
	}

	metrics.RecordReservation("paid")
	return w.succeed(s, persisted), nil
}

// persistAndNotify creates the reservation, then consumes the code, then
// queues notifications. Consumption is issued strictly after creation and
// is never rolled back.
func (w *Workflow) persistAndNotify(ctx context.Context, candidate reservation.Reservation, applied *discount.DiscountCode) (*reservation.Reservation, string) {
	candidate.ID = reservation.NewID()
	candidate.ReservationCode = reservation.NewCode()

	persisted, err := w.reservations.Create(ctx, &candidate)
	if err != nil {
		logger.Errorf("Failed to persist reservation: %v", err)
		return nil, "persist"
	}

	if applied != nil {
		w.discounts.Consume(ctx, applied.ID)
	}

	coachPhone := ""
	if links, err := w.payments.Get(ctx); err == nil {
		coachPhone = links.CoachWhatsapp
	}
	w.notifier.Dispatch(ctx, persisted, coachPhone)

	return persisted, ""
}

// CancelPayment discards the PendingReservation. No record, no
// notification.
func (w *Workflow) CancelPayment(ctx context.Context, sessionID string) (BookingState, error) {
	s, err := w.store.Get(sessionID)
	if err != nil {
		return BookingState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(w.now())

	s.pending = nil
	s.stopTimersLocked()

	next := s.state
	next.State = StateReadyToSubmit
	next.Message = ""
	next.PaymentURL = ""
	next.PaymentChannel = ""
	next.ConfirmPromptVisible = false
	s.state = next

	return next, nil
}

// Dismiss resets the session back to Idle, clearing every selection.
func (w *Workflow) Dismiss(ctx context.Context, sessionID string) (BookingState, error) {
	s, err := w.store.Get(sessionID)
	if err != nil {
		return BookingState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(w.now())

	s.pending = nil
	s.stopTimersLocked()
	s.state = BookingState{
		State:      StateIdle,
		Selections: Selections{Quantity: 1},
	}

	return s.state, nil
}

func (w *Workflow) failSubmit(s *Session, message string) BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := failLocked(s, StateReadyToSubmit, message)
	s.inFlight = false
	return st
}

func (w *Workflow) setStateTransient(s *Session, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.State = state
	next.Message = ""
	s.state = next
}

func (w *Workflow) succeed(s *Session, persisted *reservation.Reservation) BookingState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	s.stopTimersLocked()
	s.inFlight = false
	s.state = BookingState{
		State:           StateNotifiedSuccess,
		Selections:      Selections{Quantity: 1},
		LastReservation: persisted,
	}

	return s.state
}

func failLocked(s *Session, state State, message string) BookingState {
	next := s.state
	next.State = state
	next.Message = message
	next.ConfirmPromptVisible = false
	s.state = next
	return next
}
