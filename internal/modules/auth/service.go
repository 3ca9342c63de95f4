package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybnb/internal/domain"
	"staybnb/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	tokenTTL time.Duration
}

func NewService(users UserRepository, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	v := domain.NewValidationError()
	v.Merge(validator.Validate(req))
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.FieldError("username", "A user with that username already exists.")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login checks the password and returns a fresh token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		v := domain.NewValidationError()
		v.Merge(errs)
		return nil, v
	}

	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issue(u *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Username, string(u.Role()))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token, ExpiresIn: int64(s.tokenTTL.Seconds())}, nil
}

// HashPassword bcrypts a plain password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
