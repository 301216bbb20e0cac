package discount

import (
	"context"
	"strings"

	"afroboost/internal/logger"
	"afroboost/internal/metrics"
)

// RejectionError carries the user-facing reason a code was refused. The
// message is surfaced verbatim to the customer.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func Reject(message string) error {
	return &RejectionError{Message: message}
}

const (
	MsgCodeInvalid       = "Code promo invalide."
	MsgCodeInactive      = "Ce code promo n'est plus actif."
	MsgCodeExhausted     = "Ce code promo a atteint son nombre maximum d'utilisations."
	MsgCodeWrongCourse   = "Ce code promo n'est pas valable pour ce cours."
	MsgCodeWrongEmail    = "Ce code promo est réservé à un autre client."
	MsgFreeRequiresUser  = "Seuls les abonnés avec un profil existant peuvent utiliser ce code gratuit."
	MsgValidationFailure = "Erreur de validation du code promo"
)

type Service interface {
	// Validate checks a submitted code against the stored record for the
	// given customer email and course. It returns the canonical code on
	// success or a RejectionError with the refusal message.
	Validate(ctx context.Context, code, email, courseID string) (*DiscountCode, error)

	// Consume marks one use of the code. Failures are logged only; the
	// reservation it belongs to is already persisted.
	Consume(ctx context.Context, id string)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Validate(ctx context.Context, rawCode, email, courseID string) (*DiscountCode, error) {
	code, err := s.repo.FindByCode(ctx, strings.TrimSpace(rawCode))
	if err != nil {
		metrics.RecordDiscountValidation("rejected")
		return nil, Reject(MsgCodeInvalid)
	}

	if !code.Active {
		metrics.RecordDiscountValidation("rejected")
		return nil, Reject(MsgCodeInactive)
	}

	if code.MaxUses != nil && code.Used >= *code.MaxUses {
		metrics.RecordDiscountValidation("rejected")
		return nil, Reject(MsgCodeExhausted)
	}

	if len(code.Courses) > 0 && !containsCourse(code.Courses, courseID) {
		metrics.RecordDiscountValidation("rejected")
		return nil, Reject(MsgCodeWrongCourse)
	}

	if !EmailAllowed(code, email) {
		metrics.RecordDiscountValidation("rejected")
		return nil, Reject(MsgCodeWrongEmail)
	}

	metrics.RecordDiscountValidation("valid")
	return code, nil
}

func (s *service) Consume(ctx context.Context, id string) {
	if err := s.repo.IncrementUsed(ctx, id); err != nil {
		logger.Errorf("Failed to consume discount code %s: %v", id, err)
	}
}

// IsFree reports whether a validated code makes the class free outright.
func IsFree(code *DiscountCode) bool {
	if code == nil {
		return false
	}
	return code.Type == TypeFull || (code.Type == TypePercent && code.Value >= 100)
}

// EmailAllowed reports whether the code is open to the given customer
// email. Unassigned codes are open to everyone; assigned ones match
// case-insensitively.
func EmailAllowed(code *DiscountCode, email string) bool {
	if code.AssignedEmail == nil || strings.TrimSpace(*code.AssignedEmail) == "" {
		return true
	}
	return strings.EqualFold(*code.AssignedEmail, email)
}

func containsCourse(courses []string, courseID string) bool {
	for _, id := range courses {
		if id == courseID {
			return true
		}
	}
	return false
}
