package discount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDiscountRepo struct {
	mock.Mock
}

func (m *MockDiscountRepo) Create(ctx context.Context, code *DiscountCode) (*DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DiscountCode), args.Error(1)
}

func (m *MockDiscountRepo) GetByID(ctx context.Context, id string) (*DiscountCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DiscountCode), args.Error(1)
}

func (m *MockDiscountRepo) FindByCode(ctx context.Context, code string) (*DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DiscountCode), args.Error(1)
}

func (m *MockDiscountRepo) GetAll(ctx context.Context) ([]DiscountCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DiscountCode), args.Error(1)
}

func (m *MockDiscountRepo) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockDiscountRepo) IncrementUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiscountRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestIsFree(t *testing.T) {
	tests := []struct {
		name     string
		codeType string
		value    float64
		want     bool
	}{
		{"full type is free regardless of value", TypeFull, 0, true},
		{"percent at 100 is free", TypePercent, 100, true},
		{"percent above 100 is free", TypePercent, 150, true},
		{"percent below 100 is not free", TypePercent, 99, false},
		{"fixed amount is never free", TypeAmount, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := &DiscountCode{Type: tt.codeType, Value: tt.value}
			assert.Equal(t, tt.want, IsFree(code))
		})
	}
}

func TestIsFreeNilCode(t *testing.T) {
	assert.False(t, IsFree(nil))
}

func TestEmailAllowed(t *testing.T) {
	assigned := &DiscountCode{AssignedEmail: strPtr("a@x.com")}

	assert.True(t, EmailAllowed(assigned, "a@x.com"))
	assert.True(t, EmailAllowed(assigned, "A@X.COM"))
	assert.False(t, EmailAllowed(assigned, "b@x.com"))

	assert.True(t, EmailAllowed(&DiscountCode{}, "anyone@x.com"))
	assert.True(t, EmailAllowed(&DiscountCode{AssignedEmail: strPtr("  ")}, "anyone@x.com"))
}

func TestValidateSuccess(t *testing.T) {
	repo := new(MockDiscountRepo)
	svc := NewService(repo)

	stored := &DiscountCode{
		ID:     "code-1",
		Code:   "AFRO10",
		Type:   TypePercent,
		Value:  10,
		Active: true,
	}
	repo.On("FindByCode", mock.Anything, "AFRO10").Return(stored, nil)

	code, err := svc.Validate(context.Background(), "AFRO10", "client@x.com", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "code-1", code.ID)
	repo.AssertExpectations(t)
}

func TestValidateTrimsInput(t *testing.T) {
	repo := new(MockDiscountRepo)
	svc := NewService(repo)

	stored := &DiscountCode{ID: "code-1", Code: "AFRO10", Type: TypeAmount, Value: 5, Active: true}
	repo.On("FindByCode", mock.Anything, "AFRO10").Return(stored, nil)

	_, err := svc.Validate(context.Background(), "  AFRO10  ", "client@x.com", "course-1")
	require.NoError(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		stored  *DiscountCode
		email   string
		course  string
		message string
	}{
		{
			name:    "unknown code",
			stored:  nil,
			email:   "client@x.com",
			course:  "course-1",
			message: MsgCodeInvalid,
		},
		{
			name:    "inactive code",
			stored:  &DiscountCode{ID: "c", Active: false},
			email:   "client@x.com",
			course:  "course-1",
			message: MsgCodeInactive,
		},
		{
			name:    "exhausted code",
			stored:  &DiscountCode{ID: "c", Active: true, Used: 3, MaxUses: intPtr(3)},
			email:   "client@x.com",
			course:  "course-1",
			message: MsgCodeExhausted,
		},
		{
			name:    "code scoped to another course",
			stored:  &DiscountCode{ID: "c", Active: true, Courses: []string{"course-2"}},
			email:   "client@x.com",
			course:  "course-1",
			message: MsgCodeWrongCourse,
		},
		{
			name:    "code assigned to another email",
			stored:  &DiscountCode{ID: "c", Active: true, AssignedEmail: strPtr("vip@x.com")},
			email:   "client@x.com",
			course:  "course-1",
			message: MsgCodeWrongEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDiscountRepo)
			svc := NewService(repo)

			if tt.stored == nil {
				repo.On("FindByCode", mock.Anything, mock.Anything).Return(nil, ErrCodeNotFound)
			} else {
				repo.On("FindByCode", mock.Anything, mock.Anything).Return(tt.stored, nil)
			}

			code, err := svc.Validate(context.Background(), "SOMECODE", tt.email, tt.course)
			require.Error(t, err)
			assert.Nil(t, code)

			var rejection *RejectionError
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, tt.message, rejection.Message)
		})
	}
}

func TestValidateCourseScopeMatch(t *testing.T) {
	repo := new(MockDiscountRepo)
	svc := NewService(repo)

	stored := &DiscountCode{ID: "c", Active: true, Courses: []string{"course-1", "course-2"}}
	repo.On("FindByCode", mock.Anything, "SCOPED").Return(stored, nil)

	_, err := svc.Validate(context.Background(), "SCOPED", "client@x.com", "course-2")
	require.NoError(t, err)
}

func TestValidateUnderMaxUses(t *testing.T) {
	repo := new(MockDiscountRepo)
	svc := NewService(repo)

	stored := &DiscountCode{ID: "c", Active: true, Used: 2, MaxUses: intPtr(3)}
	repo.On("FindByCode", mock.Anything, "LIMITED").Return(stored, nil)

	_, err := svc.Validate(context.Background(), "LIMITED", "client@x.com", "course-1")
	require.NoError(t, err)
}

func TestConsumeSwallowsErrors(t *testing.T) {
	repo := new(MockDiscountRepo)
	svc := NewService(repo)

	repo.On("IncrementUsed", mock.Anything, "code-1").Return(ErrCodeNotFound)

	svc.Consume(context.Background(), "code-1")
	repo.AssertExpectations(t)
}
