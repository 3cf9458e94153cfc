package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"studycal/internal/model"
)

func TestSessionsIssueAndValidate(t *testing.T) {
	sessions, err := NewSessions("test-secret")
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}

	user := &model.User{GoogleID: "sub-42", Email: "x@example.edu"}
	token, expires, err := sessions.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expires) < 23*time.Hour {
		t.Errorf("expiry too soon: %v", expires)
	}

	claims, err := sessions.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.GoogleID != "sub-42" || claims.Email != "x@example.edu" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestSessionsRejectsBadTokens(t *testing.T) {
	sessions, _ := NewSessions("test-secret")
	other, _ := NewSessions("other-secret")

	good, _, err := sessions.Issue(&model.User{GoogleID: "sub-1"})
	if err != nil {
		t.Fatal(err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		GoogleID: "sub-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		token string
		want  string
	}{
		{"garbage", "not.a.jwt", "malformed"},
		{"wrong key", good, "signature"},
		{"expired", expiredToken, "expired"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sessions
			if tc.name == "wrong key" {
				s = other
			}
			_, err := s.Validate(tc.token)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNewSessionsRequiresSecret(t *testing.T) {
	if _, err := NewSessions(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestUserFromProfile(t *testing.T) {
	u := UserFromProfile(&Profile{
		Subject:   "sub-9",
		Email:     "e@example.edu",
		FirstName: "Grace",
		LastName:  "Hopper",
		Picture:   "https://example.edu/g.png",
	})
	if u.GoogleID != "sub-9" || u.FirstName != "Grace" || u.LastName != "Hopper" {
		t.Errorf("user = %+v", u)
	}
}
