package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrDevAuthDisabled = errors.New("dev auth disabled")
)

const (
	DevUserID = "dev-user"
	devTTL    = 30 * 24 * time.Hour
)

// Service выпускает и проверяет HS256 токены
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	mode   string
	now    func() time.Time
}

func NewService(cfg *config.Config) *Service {
	ttl := time.Duration(cfg.JWTTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    ttl,
		mode:   cfg.AuthMode,
		now:    time.Now,
	}
}

// SignInDev - dev-авторизация, выдает JWT на 30 дней
func (s *Service) SignInDev(ctx context.Context) (*TokenResponse, error) {
	_ = ctx
	if s.mode != "dev" {
		return nil, ErrDevAuthDisabled
	}
	return s.issue(DevUserID, devTTL)
}

// IssueToken signs a token for userID with the configured TTL.
func (s *Service) IssueToken(userID string) (*TokenResponse, error) {
	return s.issue(userID, s.ttl)
}

func (s *Service) issue(userID string, ttl time.Duration) (*TokenResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	now := s.now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		ExpiresAt:   exp.UTC(),
		UserID:      userID,
	}, nil
}

// VerifyJWT returns the subject of a valid token issued by this service.
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
