package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/complaint-service/internal/config"
	"github.com/campuscare/complaint-service/internal/domain"
	"github.com/campuscare/complaint-service/internal/repository"
	apperrors "github.com/campuscare/complaint-service/pkg/util"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		sameEmployeeID := user.EmployeeID != "" && existing.EmployeeID == user.EmployeeID
		if existing.Email == user.Email || sameEmployeeID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[copied.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, email, passwordHash string) error {
	for _, user := range r.users {
		if user.Email == email {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newTestAuthService(repo repository.UserRepository, tickets repository.ResetTicketStore) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			ResetTicketTTLMinutes: 10,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, AuthDependencies{UserRepo: repo, TicketStore: tickets})
}

func signupInput(email, employeeID string) RegisterInput {
	return RegisterInput{
		Email:            email,
		Password:         "pw12345",
		Name:             "A",
		EmployeeID:       employeeID,
		SecurityQuestion: domain.SecurityQuestionFavColour,
		SecurityAnswer:   "Blue",
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(0))
	ctx := context.Background()

	user, token, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "pw12345", user.PasswordHash)
	assert.Equal(t, "blue", user.SecurityAnswer)

	loggedIn, token, err := svc.Login(ctx, "a@x.edu", "pw12345")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_LoginFailsUniformly(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(0))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "a@x.edu", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@x.edu", "pw12345")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, 401, apperrors.ToDomainError(wrongPassword).HTTPStatus)
	assert.Equal(t, 401, apperrors.ToDomainError(unknownEmail).HTTPStatus)
}

func TestAuthService_DuplicateIdentity(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(0))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)

	_, _, sameEmail := svc.Register(ctx, signupInput("a@x.edu", "EMP02"))
	require.Error(t, sameEmail)
	assert.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(sameEmail).Code)
	assert.Equal(t, 400, apperrors.ToDomainError(sameEmail).HTTPStatus)

	_, _, sameEmployee := svc.Register(ctx, signupInput("b@x.edu", "EMP01"))
	require.Error(t, sameEmployee)
	assert.Equal(t, "DUPLICATE_IDENTITY", apperrors.ToDomainError(sameEmployee).Code)
}

func TestAuthService_Register_EmployeeIDOptional(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(0))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", ""))
	require.NoError(t, err)

	// a second account without an employee ID is not a duplicate
	user, _, err := svc.Register(ctx, signupInput("b@x.edu", ""))
	require.NoError(t, err)
	assert.Empty(t, user.EmployeeID)
}

func TestAuthService_VerifySecurityAnswer_CaseInsensitive(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(time.Minute))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)

	assert.NoError(t, svc.VerifySecurityAnswer(ctx, "a@x.edu", "bLuE"))

	err = svc.VerifySecurityAnswer(ctx, "a@x.edu", "red")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)

	err = svc.VerifySecurityAnswer(ctx, "nobody@x.edu", "blue")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthService_ResetPassword_RequiresVerification(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(time.Minute))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, "a@x.edu", "newpw123")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthService_ResetPassword_AfterVerification(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), repository.NewMemoryResetTicketStore(time.Minute))
	ctx := context.Background()

	_, _, err := svc.Register(ctx, signupInput("a@x.edu", "EMP01"))
	require.NoError(t, err)

	require.NoError(t, svc.VerifySecurityAnswer(ctx, "a@x.edu", "blue"))

	require.NoError(t, svc.ResetPassword(ctx, "a@x.edu", "newpw123"))

	_, _, err = svc.Login(ctx, "a@x.edu", "newpw123")
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, "a@x.edu", "pw12345")
	assert.Error(t, err)

	// ticket is one-shot
	err = svc.ResetPassword(ctx, "a@x.edu", "another1")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthService_ResetPassword_UnknownUser(t *testing.T) {
	tickets := repository.NewMemoryResetTicketStore(time.Minute)
	svc := newTestAuthService(newFakeUserRepo(), tickets)
	ctx := context.Background()

	require.NoError(t, tickets.Issue(ctx, "ghost@x.edu"))

	err := svc.ResetPassword(ctx, "ghost@x.edu", "newpw123")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, repository.NewMemoryResetTicketStore(0))
	ctx := context.Background()

	adminCfg := config.AdminConfig{
		Email:      "admin@bitmesra.ac.in",
		Password:   "admin",
		Name:       "Admin User",
		EmployeeID: "ADMIN001",
	}
	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))

	admin, err := repo.GetByEmail(ctx, "admin@bitmesra.ac.in")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// second boot is a no-op
	require.NoError(t, svc.EnsureAdmin(ctx, adminCfg))

	user, _, err := svc.Login(ctx, "admin@bitmesra.ac.in", "admin")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
}
