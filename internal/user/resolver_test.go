package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, id, name, email, whatsapp string) (*User, error) {
	args := m.Called(ctx, id, name, email, whatsapp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) GetAll(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func TestResolveExistingUser(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, "user-1").Return(&User{
		ID:       "user-1",
		Name:     "Awa Diop",
		Email:    "awa@example.com",
		Whatsapp: "+41791234567",
	}, nil)

	resolver := NewResolver(repo)

	identity, err := resolver.Resolve(context.Background(), ResolveInput{
		IsExistingUser: true,
		UserID:         "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "awa@example.com", identity.Email)
	assert.True(t, identity.Existing)
}

func TestResolveExistingUserNotFound(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, ErrUserNotFound)

	resolver := NewResolver(repo)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		IsExistingUser: true,
		UserID:         "ghost",
	})

	assert.Equal(t, ErrUserNotFound, err)
}

func TestResolveNewUser(t *testing.T) {
	resolver := NewResolver(new(MockUserRepo))

	identity, err := resolver.Resolve(context.Background(), ResolveInput{
		Name:     "Mo Keller",
		Email:    "mo@example.com",
		Whatsapp: "+41790000000",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, identity.ID)
	assert.Contains(t, identity.ID, "user-")
	assert.False(t, identity.Existing)
}

func TestResolveNewUserMissingFields(t *testing.T) {
	resolver := NewResolver(new(MockUserRepo))

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		Email:    "mo@example.com",
		Whatsapp: "+41790000000",
	})

	assert.Equal(t, ErrMissingUserFields, err)
}

func TestResolveMissingContactInfo(t *testing.T) {
	tests := []struct {
		name  string
		input ResolveInput
	}{
		{
			name: "new user without whatsapp",
			input: ResolveInput{
				Name:  "Mo Keller",
				Email: "mo@example.com",
			},
		},
		{
			name: "new user with blank whatsapp",
			input: ResolveInput{
				Name:     "Mo Keller",
				Email:    "mo@example.com",
				Whatsapp: "   ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(new(MockUserRepo))

			_, err := resolver.Resolve(context.Background(), tt.input)
			assert.Equal(t, ErrMissingContactInfo, err)
		})
	}
}

func TestResolveExistingUserWithoutWhatsapp(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, "user-2").Return(&User{
		ID:    "user-2",
		Name:  "Sam Roth",
		Email: "sam@example.com",
	}, nil)

	resolver := NewResolver(repo)

	_, err := resolver.Resolve(context.Background(), ResolveInput{
		IsExistingUser: true,
		UserID:         "user-2",
	})

	assert.Equal(t, ErrMissingContactInfo, err)
}
