package service

import (
	"fmt"
	"time"

	tt "task_tracker"
	"task_tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = time.Hour
	minSecretLen    = 32
)

// Claims defines JWT claims. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	LoginKey string `json:"login_key"`
}

// TokenManager issues and verifies stateless HS256 bearer tokens.
// There is no revocation list: a leaked token stays valid until it expires.
type TokenManager struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenManager copies secret; the key cannot change after construction.
func NewTokenManager(secret string, ttl time.Duration, issuer string) (*TokenManager, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLen)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{
		key:    []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token for the subject, expiring after the configured TTL.
func (m *TokenManager) Issue(subjectID, loginKey string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		LoginKey: loginKey,
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", tt.ErrInternal, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and issuer, then returns the identity claim.
// Any failure yields tt.ErrInvalidToken and no identity.
func (m *TokenManager) Verify(accessToken string) (models.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	}, opts...)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", tt.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Identity{}, tt.ErrInvalidToken
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", tt.ErrInvalidToken)
	}

	return models.Identity{UserID: claims.Subject, LoginKey: claims.LoginKey}, nil
}
