package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afroboost/internal/course"
	"afroboost/internal/discount"
	"afroboost/internal/offer"
	"afroboost/internal/payment"
	"afroboost/internal/reservation"
	"afroboost/internal/user"
)

type stubCourses struct {
	byID map[string]*course.Course
}

func (s *stubCourses) Create(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*course.Course, error) {
	return nil, errors.New("unused")
}

func (s *stubCourses) GetByID(ctx context.Context, id string) (*course.Course, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, course.ErrCourseNotFound
	}
	return c, nil
}

func (s *stubCourses) GetAll(ctx context.Context) ([]course.Course, error) { return nil, nil }

func (s *stubCourses) Update(ctx context.Context, id, name string, weekday int, courseTime, locationName string) (*course.Course, error) {
	return nil, errors.New("unused")
}

func (s *stubCourses) Delete(ctx context.Context, id string) error { return errors.New("unused") }

type stubOffers struct {
	byID map[string]*offer.Offer
}

func (s *stubOffers) Create(ctx context.Context, id, name string, price float64, visible bool) (*offer.Offer, error) {
	return nil, errors.New("unused")
}

func (s *stubOffers) GetByID(ctx context.Context, id string) (*offer.Offer, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, offer.ErrOfferNotFound
	}
	return o, nil
}

func (s *stubOffers) GetAll(ctx context.Context) ([]offer.Offer, error) { return nil, nil }

func (s *stubOffers) GetVisible(ctx context.Context) ([]offer.Offer, error) {
	var visible []offer.Offer
	for _, o := range s.byID {
		if o.Visible {
			visible = append(visible, *o)
		}
	}
	return visible, nil
}

func (s *stubOffers) Update(ctx context.Context, id, name string, price float64, visible bool) (*offer.Offer, error) {
	return nil, errors.New("unused")
}

func (s *stubOffers) Delete(ctx context.Context, id string) error { return errors.New("unused") }

type stubUsers struct {
	mu      sync.Mutex
	byID    map[string]*user.User
	created []string
}

func (s *stubUsers) Create(ctx context.Context, id, name, email, whatsapp string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &user.User{ID: id, Name: name, Email: email, Whatsapp: whatsapp}
	s.byID[id] = u
	s.created = append(s.created, id)
	return u, nil
}

func (s *stubUsers) FindByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (s *stubUsers) EmailExists(ctx context.Context, email string) (bool, error) { return false, nil }

func (s *stubUsers) GetAll(ctx context.Context) ([]user.User, error) { return nil, nil }

type stubDiscounts struct {
	mu       sync.Mutex
	byCode   map[string]*discount.DiscountCode
	consumed []string
	events   *[]string
}

func (s *stubDiscounts) Create(ctx context.Context, code *discount.DiscountCode) (*discount.DiscountCode, error) {
	return nil, errors.New("unused")
}

func (s *stubDiscounts) GetByID(ctx context.Context, id string) (*discount.DiscountCode, error) {
	return nil, discount.ErrCodeNotFound
}

func (s *stubDiscounts) FindByCode(ctx context.Context, code string) (*discount.DiscountCode, error) {
	c, ok := s.byCode[code]
	if !ok {
		return nil, discount.ErrCodeNotFound
	}
	return c, nil
}

func (s *stubDiscounts) GetAll(ctx context.Context) ([]discount.DiscountCode, error) { return nil, nil }

func (s *stubDiscounts) SetActive(ctx context.Context, id string, active bool) error {
	return errors.New("unused")
}

func (s *stubDiscounts) IncrementUsed(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumed = append(s.consumed, id)
	if s.events != nil {
		*s.events = append(*s.events, "consume")
	}
	return nil
}

func (s *stubDiscounts) Delete(ctx context.Context, id string) error { return errors.New("unused") }

type stubPayments struct {
	links payment.Links
}

func (s *stubPayments) Get(ctx context.Context) (*payment.Links, error) {
	links := s.links
	return &links, nil
}

func (s *stubPayments) Update(ctx context.Context, links *payment.Links) (*payment.Links, error) {
	return nil, errors.New("unused")
}

type stubReservations struct {
	mu      sync.Mutex
	created []reservation.Reservation
	events  *[]string
	fail    bool
}

func (s *stubReservations) Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("db down")
	}
	s.created = append(s.created, *res)
	if s.events != nil {
		*s.events = append(*s.events, "create")
	}
	copied := *res
	return &copied, nil
}

func (s *stubReservations) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	return nil, reservation.ErrReservationNotFound
}

func (s *stubReservations) GetAll(ctx context.Context) ([]reservation.Reservation, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	dispatched []struct {
		res        reservation.Reservation
		coachPhone string
	}
}

func (f *fakeNotifier) Dispatch(ctx context.Context, res *reservation.Reservation, coachPhone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, struct {
		res        reservation.Reservation
		coachPhone string
	}{*res, coachPhone})
}

type recordingOutbound struct {
	mu     sync.Mutex
	opened []string
}

func (r *recordingOutbound) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, url)
	return nil
}

type fixture struct {
	store        *Store
	workflow     *Workflow
	courses      *stubCourses
	offers       *stubOffers
	users        *stubUsers
	discounts    *stubDiscounts
	payments     *stubPayments
	reservations *stubReservations
	notifier     *fakeNotifier
	outbound     *recordingOutbound
	events       []string
}

func newFixture() *fixture {
	f := &fixture{
		store: NewStore(),
		courses: &stubCourses{byID: map[string]*course.Course{
			"course-1": {ID: "course-1", Name: "Afro Cardio", Weekday: 1, Time: "18:30"},
		}},
		offers: &stubOffers{byID: map[string]*offer.Offer{
			"offer-1": {ID: "offer-1", Name: "Séance unique", Price: 50, Visible: true},
		}},
		users: &stubUsers{byID: map[string]*user.User{
			"user-1": {ID: "user-1", Name: "Awa", Email: "awa@x.com", Whatsapp: "+41791234567"},
		}},
		discounts:    &stubDiscounts{byCode: map[string]*discount.DiscountCode{}},
		payments:     &stubPayments{},
		reservations: &stubReservations{},
		notifier:     &fakeNotifier{},
		outbound:     &recordingOutbound{},
	}
	f.discounts.events = &f.events
	f.reservations.events = &f.events

	f.workflow = NewWorkflow(
		f.store,
		f.courses,
		f.offers,
		f.users,
		user.NewResolver(f.users),
		discount.NewService(f.discounts),
		f.payments,
		f.reservations,
		f.notifier,
		f.outbound,
	)
	f.workflow.confirmDelay = time.Millisecond
	return f
}

func pendingOf(s *Session) *PendingReservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }
func intp(n int) *int       { return &n }

func (f *fixture) selectAll(t *testing.T, sessionID string, existing bool) BookingState {
	t.Helper()
	ctx := context.Background()

	st, err := f.workflow.Select(ctx, sessionID, SelectRequest{CourseID: strp("course-1")})
	require.NoError(t, err)
	require.Equal(t, StateCourseSelected, st.State)

	st, err = f.workflow.Select(ctx, sessionID, SelectRequest{SessionDate: strp("2026-03-02")})
	require.NoError(t, err)
	require.Equal(t, StateDateSelected, st.State)

	st, err = f.workflow.Select(ctx, sessionID, SelectRequest{OfferID: strp("offer-1")})
	require.NoError(t, err)
	require.Equal(t, StateOfferSelected, st.State)

	req := SelectRequest{AcceptedTerms: boolp(true)}
	if existing {
		req.IsExistingUser = boolp(true)
		req.UserID = strp("user-1")
	}
	st, err = f.workflow.Select(ctx, sessionID, req)
	require.NoError(t, err)
	require.Equal(t, StateReadyToSubmit, st.State)

	return st
}

func TestPaidBookingEndToEnd(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay", CoachWhatsapp: "+41799998877"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingExternalPayment, st.State)
	assert.Equal(t, "twint", st.PaymentChannel)
	assert.Equal(t, []string{"https://twint.ch/pay"}, f.outbound.opened)
	assert.Empty(t, f.reservations.created, "nothing persists before confirm")

	require.Eventually(t, func() bool {
		return s.Snapshot().State == StateAwaitingManualConfirmation
	}, time.Second, 5*time.Millisecond)
	assert.True(t, s.Snapshot().ConfirmPromptVisible)

	st, err = f.workflow.Confirm(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateNotifiedSuccess, st.State)

	require.Len(t, f.reservations.created, 1)
	created := f.reservations.created[0]
	assert.Equal(t, 50.0, created.TotalPrice)
	assert.Equal(t, "50.00", reservation.FormatAmount(created.TotalPrice))
	assert.Equal(t, "user-1", created.UserID)
	assert.NotEmpty(t, created.ReservationCode)
	assert.Len(t, created.ReservationCode, 6)

	require.Len(t, f.notifier.dispatched, 1)
	assert.Equal(t, "+41799998877", f.notifier.dispatched[0].coachPhone)

	require.NotNil(t, st.LastReservation)
	assert.Equal(t, StateIdle, f.mustDismiss(t, s.ID()).State)
}

func (f *fixture) mustDismiss(t *testing.T, sessionID string) BookingState {
	t.Helper()
	st, err := f.workflow.Dismiss(context.Background(), sessionID)
	require.NoError(t, err)
	return st
}

func TestFreeBookingEndToEnd(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{CoachWhatsapp: "+41799998877"}
	assigned := "awa@x.com"
	f.discounts.byCode["GRATUIT"] = &discount.DiscountCode{
		ID:            "code-1",
		Code:          "GRATUIT",
		Type:          discount.TypeFull,
		Active:        true,
		AssignedEmail: &assigned,
	}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{DiscountCode: strp("GRATUIT")})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateNotifiedSuccess, st.State)

	require.Len(t, f.reservations.created, 1)
	assert.Equal(t, 0.0, f.reservations.created[0].TotalPrice)
	assert.Equal(t, "0.00", reservation.FormatAmount(f.reservations.created[0].TotalPrice))

	// Consumption strictly follows creation.
	assert.Equal(t, []string{"create", "consume"}, f.events)
	assert.Equal(t, []string{"code-1"}, f.discounts.consumed)

	require.Len(t, f.notifier.dispatched, 1)
	assert.Empty(t, f.outbound.opened, "no payment link on the free path")
}

func TestPaymentUnavailableBlocksEverything(t *testing.T) {
	f := newFixture()
	// No payment links configured at all.

	s := f.store.Create()
	f.selectAll(t, s.ID(), false)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{
		Name:     strp("Nnew Person"),
		Email:    strp("new@x.com"),
		Whatsapp: strp("+41790000000"),
	})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateReadyToSubmit, st.State)
	assert.Equal(t, payment.MsgPaymentRequired, st.Message)

	assert.Empty(t, f.users.created, "no user created")
	assert.Empty(t, f.reservations.created, "no reservation created")
	assert.Empty(t, f.notifier.dispatched)
	assert.Nil(t, pendingOf(s))
}

func TestCancelDiscardsPending(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Stripe: "https://stripe.com/x"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingExternalPayment, st.State)
	assert.Equal(t, "stripe", st.PaymentChannel)

	st, err = f.workflow.CancelPayment(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateReadyToSubmit, st.State)
	assert.Empty(t, st.PaymentURL)

	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.notifier.dispatched)

	st, err = f.workflow.Confirm(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, MsgNothingToConfirm, st.Message)
	assert.Empty(t, f.reservations.created)
}

func TestSubmitRequiresTerms(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}

	s := f.store.Create()
	ctx := context.Background()
	_, err := f.workflow.Select(ctx, s.ID(), SelectRequest{CourseID: strp("course-1")})
	require.NoError(t, err)
	_, err = f.workflow.Select(ctx, s.ID(), SelectRequest{SessionDate: strp("2026-03-02")})
	require.NoError(t, err)
	_, err = f.workflow.Select(ctx, s.ID(), SelectRequest{OfferID: strp("offer-1")})
	require.NoError(t, err)

	st, err := f.workflow.Submit(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, MsgIncompleteSelection, st.Message)
	assert.Empty(t, f.reservations.created)
}

func TestFreeCodeRequiresExistingProfile(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}
	f.discounts.byCode["GRATUIT"] = &discount.DiscountCode{
		ID:     "code-1",
		Code:   "GRATUIT",
		Type:   discount.TypeFull,
		Active: true,
	}

	s := f.store.Create()
	f.selectAll(t, s.ID(), false)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{
		Name:         strp("Nouvelle"),
		Email:        strp("nouvelle@x.com"),
		Whatsapp:     strp("+41790000000"),
		DiscountCode: strp("GRATUIT"),
	})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateReadyToSubmit, st.State)
	assert.Equal(t, discount.MsgFreeRequiresUser, st.Message)
	assert.Empty(t, f.reservations.created)
	assert.Empty(t, f.discounts.consumed)
}

func TestMissingContactInfoBlocksSubmit(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}
	f.users.byID["user-2"] = &user.User{ID: "user-2", Name: "Sans Tel", Email: "sans@x.com"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), false)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{
		IsExistingUser: boolp(true),
		UserID:         strp("user-2"),
	})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, user.ErrMissingContactInfo.Error(), st.Message)
	assert.Empty(t, f.reservations.created)
}

func TestDiscountRejectionSurfacesServerMessage(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{DiscountCode: strp("INCONNU")})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateReadyToSubmit, st.State)
	assert.Equal(t, discount.MsgCodeInvalid, st.Message)
	assert.Empty(t, f.reservations.created)
}

func TestPartialDiscountDoesNotReduceTotal(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}
	f.discounts.byCode["MOITIE"] = &discount.DiscountCode{
		ID:     "code-50",
		Code:   "MOITIE",
		Type:   discount.TypePercent,
		Value:  50,
		Active: true,
	}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{
		DiscountCode: strp("MOITIE"),
		Quantity:     intp(2),
	})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	require.Equal(t, StateAwaitingExternalPayment, st.State)

	_, err = f.workflow.Confirm(context.Background(), s.ID())
	require.NoError(t, err)

	require.Len(t, f.reservations.created, 1)
	created := f.reservations.created[0]
	assert.Equal(t, 100.0, created.TotalPrice, "partial codes leave the total untouched")
	require.NotNil(t, created.DiscountCode)
	assert.Equal(t, "MOITIE", *created.DiscountCode)
	assert.Equal(t, []string{"code-50"}, f.discounts.consumed)
}

func TestNewUserCreatedOnPaidPath(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Paypal: "https://paypal.me/x"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), false)
	_, err := f.workflow.Select(context.Background(), s.ID(), SelectRequest{
		Name:     strp("Nouvelle"),
		Email:    strp("nouvelle@x.com"),
		Whatsapp: strp("+41790000000"),
	})
	require.NoError(t, err)

	st, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingExternalPayment, st.State)
	assert.Equal(t, "paypal", st.PaymentChannel)
	require.Len(t, f.users.created, 1)
	assert.Contains(t, f.users.created[0], "user-")
}

func TestConfirmFailureKeepsPending(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)

	_, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)

	f.reservations.fail = true
	st, err := f.workflow.Confirm(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingManualConfirmation, st.State)
	assert.Equal(t, MsgReservationFailure, st.Message)
	require.NotNil(t, pendingOf(s))

	// A retried confirm succeeds with the same candidate.
	f.reservations.fail = false
	st, err = f.workflow.Confirm(context.Background(), s.ID())
	require.NoError(t, err)
	assert.Equal(t, StateNotifiedSuccess, st.State)
	require.Len(t, f.reservations.created, 1)
}

func TestNewSelectionDiscardsPending(t *testing.T) {
	f := newFixture()
	f.payments.links = payment.Links{Twint: "https://twint.ch/pay"}

	s := f.store.Create()
	f.selectAll(t, s.ID(), true)

	_, err := f.workflow.Submit(context.Background(), s.ID())
	require.NoError(t, err)
	require.NotNil(t, pendingOf(s))

	_, err = f.workflow.Select(context.Background(), s.ID(), SelectRequest{Quantity: intp(3)})
	require.NoError(t, err)
	assert.Nil(t, pendingOf(s))
}
