package users

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Domenick1991/travelbooking/internal/auth"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) (needsRehash bool, err error)
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token  string
	UserID int64
}

type UserService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer, hasher PasswordHasher, logger *slog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, hasher: hasher, logger: logger}
}

var (
	errEmailExists        = domain.NewError(domain.ErrConflict, "EMAIL_EXISTS", "Email already registered")
	errInvalidCredentials = domain.NewError(domain.ErrAuth, "INVALID_CREDENTIALS", "Invalid email or password")
	errUserNotFound       = domain.NotFound("USER_NOT_FOUND", "User not found")
	errPasswordTooLong    = domain.Validation("PASSWORD_TOO_LONG", "Password must be at most 72 bytes")
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return nil, domain.Validation("MISSING_FIELDS", "Missing required fields: full_name, email and password are required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.Validation("INVALID_EMAIL", "Invalid email address")
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, errPasswordTooLong
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.Storage("check email", err)
	}
	if exists {
		return nil, errEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		return nil, domain.Storage("hash password", err)
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, domain.ErrConflict) {
			return nil, errEmailExists
		}
		return nil, domain.Storage("create user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Storage("issue token", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{Token: token, UserID: user.ID}, nil
}

// Login fails with the same INVALID_CREDENTIALS error for an unknown email
// and for a wrong password.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.Validation("MISSING_FIELDS", "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, domain.Storage("find user", err)
	}

	needsRehash, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if needsRehash {
		s.rehash(ctx, user.ID, input.Password)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domain.Storage("issue token", err)
	}
	return &AuthResult{Token: token, UserID: user.ID}, nil
}

// rehash migrates a legacy plaintext row to bcrypt. Failure leaves the row
// as it was and does not fail the login.
func (s *UserService) rehash(ctx context.Context, userID int64, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, userID, hash)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "legacy password rehash failed", "user_id", userID, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "legacy password rehashed", "user_id", userID)
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, domain.Storage("load profile", err)
	}
	return user, nil
}

var (
	_ UserUseCase    = (*UserService)(nil)
	_ TokenIssuer    = (*auth.TokenIssuer)(nil)
	_ PasswordHasher = (*auth.PasswordHasher)(nil)
)
