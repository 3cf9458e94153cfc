package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"google.golang.org/api/idtoken"

	"studycal/internal/model"
)

// Profile is the subset of a verified Google ID-token payload the planner
// cares about.
type Profile struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Verifier checks a Google ID token and extracts the profile. The production
// implementation calls Google; tests substitute their own.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Profile, error)
}

// GoogleVerifier validates tokens against Google's public keys for a fixed
// OAuth client ID.
type GoogleVerifier struct {
	ClientID string
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, token, v.ClientID)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	p := &Profile{Subject: payload.Subject}
	// Claim names follow Google's payload rules.
	p.Email, _ = payload.Claims["email"].(string)
	p.FirstName, _ = payload.Claims["given_name"].(string)
	p.LastName, _ = payload.Claims["family_name"].(string)
	p.Picture, _ = payload.Claims["picture"].(string)
	if p.Subject == "" {
		return nil, errors.New("google token has no subject")
	}
	return p, nil
}

// UserFromProfile maps a verified profile onto the stored user shape.
func UserFromProfile(p *Profile) model.User {
	return model.User{
		GoogleID:  p.Subject,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Picture:   p.Picture,
	}
}

// sessionTTL bounds how long a login survives without re-authenticating.
const sessionTTL = 24 * time.Hour

// Claims is the session-token payload issued after a successful Google login.
type Claims struct {
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions signs and validates the planner's own session JWTs (HS256).
type Sessions struct {
	key []byte
}

// NewSessions builds a session signer. The secret must be non-empty.
func NewSessions(secret string) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &Sessions{key: []byte(secret)}, nil
}

// Issue creates a signed session token for the user.
func (s *Sessions) Issue(u *model.User) (string, time.Time, error) {
	expires := time.Now().Add(sessionTTL)
	claims := &Claims{
		GoogleID: u.GoogleID,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "studycal",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Validate parses a session token and returns its claims.
func (s *Sessions) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, errors.New("session token is malformed")
			case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
				return nil, errors.New("session expired")
			}
		}
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !parsed.Valid || claims.GoogleID == "" {
		return nil, errors.New("session token is invalid")
	}
	return claims, nil
}
