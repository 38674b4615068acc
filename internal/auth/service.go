package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidInput       = errors.New("invalid input")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore is the credential store consumed by the auth service.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, user User) error
}

type Service struct {
	users      UserStore
	tokens     *TokenIssuer
	bcryptCost int
	logger     logrus.FieldLogger
	now        func() time.Time
}

type Option func(*Service)

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(users UserStore, tokens *TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logrus.StandardLogger(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return User{}, err
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Login never reveals whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if !checkPassword(user.PasswordHash, password) {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.tokens.IssuePair(user.Username)
}

// Refresh rotates the pair. The presented refresh token is not revoked and
// stays usable until it expires.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	username, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return TokenPair{}, err
	}

	return s.tokens.IssuePair(user.Username)
}

func (s *Service) Authenticate(ctx context.Context, accessToken string) (User, error) {
	username, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return User{}, err
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return user, nil
}
