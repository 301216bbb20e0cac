package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingContactInfo is the single message shown when the resolved
	// identity lacks an email or a WhatsApp number.
	ErrMissingContactInfo = errors.New("L'email et le numéro WhatsApp sont obligatoires pour réserver.")

	ErrMissingUserFields = errors.New("name and email are required")
)

type ResolveInput struct {
	IsExistingUser bool
	UserID         string
	Name           string
	Email          string
	Whatsapp       string
}

// Resolver turns a booking form's identity selection into a resolved
// Identity. It never persists anything itself; the workflow creates the
// user record on the paid path.
type Resolver interface {
	Resolve(ctx context.Context, in ResolveInput) (*Identity, error)
}

type resolver struct {
	repo Repository
	now  func() time.Time
}

func NewResolver(repo Repository) Resolver {
	return &resolver{repo: repo, now: time.Now}
}

func (r *resolver) Resolve(ctx context.Context, in ResolveInput) (*Identity, error) {
	identity, err := r.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	// Both contacts are required before any booking proceeds.
	if strings.TrimSpace(identity.Email) == "" || strings.TrimSpace(identity.Whatsapp) == "" {
		return nil, ErrMissingContactInfo
	}

	return identity, nil
}

func (r *resolver) resolve(ctx context.Context, in ResolveInput) (*Identity, error) {
	if in.IsExistingUser {
		u, err := r.repo.FindByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		return &Identity{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Whatsapp: u.Whatsapp,
			Existing: true,
		}, nil
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrMissingUserFields
	}

	return &Identity{
		ID:       fmt.Sprintf("user-%d", r.now().UnixMilli()),
		Name:     in.Name,
		Email:    in.Email,
		Whatsapp: in.Whatsapp,
		Existing: false,
	}, nil
}
