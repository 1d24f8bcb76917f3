package security

import (
	"context"
	"errors"
	"time"

	"sharvari-site/internal/auth/config"
	"sharvari-site/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// JWTokenService implements JWT token generation and validation
type JWTokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTokenService creates a new JWT token service
func NewJWTokenService(cfg *config.Config) (*JWTokenService, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.JWTIssuer == "" {
		return nil, errors.New("jwt issuer cannot be empty")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("jwt access token TTL must be positive")
	}

	return &JWTokenService{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    cfg.JWTIssuer,
		ttl:       cfg.AccessTokenTTL,
		now:       time.Now,
	}, nil
}

var _ repository.TokenService = (*JWTokenService)(nil)

// GenerateToken signs a new access token for the given user. Each token
// carries a fresh jti so it can be revoked on its own.
func (s *JWTokenService) GenerateToken(ctx context.Context, userID, email string) (string, *repository.Claims, error) {
	now := s.now()
	claims := &repository.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTokenService) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &repository.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*repository.Claims)
	if !ok || !token.Valid || claims.ID == "" || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
