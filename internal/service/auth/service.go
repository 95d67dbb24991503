package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/domain/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type account struct {
	user models.User
	hash []byte
}

type claims struct {
	Username    string `json:"username"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// Service checks logins against the configured allow-list and issues
// signed session tokens.
type Service struct {
	accounts map[string]account
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewService hashes every configured password. Clear-text passwords are not
// retained.
func NewService(cfg config.AuthConfig, logger *zap.Logger) (*Service, error) {
	return newService(cfg, logger, bcrypt.DefaultCost)
}

func newService(cfg config.AuthConfig, logger *zap.Logger, cost int) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	accounts := make(map[string]account, len(cfg.Users))
	for _, u := range cfg.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		accounts[u.Username] = account{
			user: models.User{Username: u.Username, DisplayName: u.DisplayName},
			hash: hash,
		}
	}

	return &Service{
		accounts: accounts,
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Login verifies the credentials and returns a bearer token for the user.
func (s *Service) Login(username, password string) (string, models.User, error) {
	acc, ok := s.accounts[username]
	if !ok {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", "password mismatch"))
		return "", models.User{}, ErrInvalidCredentials
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username:    acc.user.Username,
		DisplayName: acc.user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.User{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", username))
	return signed, acc.user, nil
}

// Verify parses a bearer token and returns the user it was issued to.
func (s *Service) Verify(tokenString string) (models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.Username == "" {
		return models.User{}, ErrInvalidToken
	}
	if _, known := s.accounts[c.Username]; !known {
		return models.User{}, ErrInvalidToken
	}
	return models.User{Username: c.Username, DisplayName: c.DisplayName}, nil
}
