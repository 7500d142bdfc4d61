package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/glovebox/glovebox/backend/go-services/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MinPasswordLength matches the minimum accepted by the mobile sign-up form.
const MinPasswordLength = 6

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	cost int
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// Register creates a password account. The email is normalised to lower case.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normaliseEmail(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user for a matching email/password pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, normaliseEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpsertFromClaims creates or updates a user using OIDC claims map
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return nil, nil
	}
	u := &models.User{
		Sub:   sub,
		Email: normaliseEmail(email),
		Name:  name,
	}
	return s.repo.UpsertBySub(ctx, u)
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateName changes the display name shown on the profile screen.
func (s *Service) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	u, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Resolver maps verified token claims to a user id. Tokens from localIssuer carry
// the user id as subject; any other issuer is treated as federated and upserted.
func (s *Service) Resolver(localIssuer string) func(ctx context.Context, claims map[string]interface{}) (string, error) {
	return func(ctx context.Context, claims map[string]interface{}) (string, error) {
		if iss, _ := claims["iss"].(string); iss == localIssuer {
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return "", fmt.Errorf("token has no subject")
			}
			return sub, nil
		}
		u, err := s.UpsertFromClaims(ctx, claims)
		if err != nil {
			return "", err
		}
		if u == nil {
			return "", fmt.Errorf("token has no subject")
		}
		return u.ID, nil
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
