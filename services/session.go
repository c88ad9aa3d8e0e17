package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is deliberately long: the rally has no accounts, so losing
// the cookie means losing the badges. "Perpetual" login, one year.
const SessionTTL = 365 * 24 * time.Hour

// SessionService mints and verifies per-device session credentials.
// Stateless: no session table; validity is signature + expiry only.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret), ttl: SessionTTL}
}

// Issue mints a fresh device identity and a signed credential embedding it.
// Calling it again always registers a new, unrelated identity.
func (s *SessionService) Issue() (deviceID, token string, err error) {
	deviceID = uuid.NewString()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   deviceID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return deviceID, token, nil
}

// Verify recovers the device identity from a presented credential.
// Every failure mode (missing, malformed, expired, bad signature) collapses
// to ok=false; callers never distinguish subtypes.
func (s *SessionService) Verify(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
