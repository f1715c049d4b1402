package serverutils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return str
}

func TestResolveUserId(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	valid := signedToken(t, "test-secret", jwt.MapClaims{"user_id": "alice"})
	wrongKey := signedToken(t, "other-secret", jwt.MapClaims{"user_id": "alice"})
	noClaim := signedToken(t, "test-secret", jwt.MapClaims{"sub": "alice"})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid token", header: "Bearer " + valid, want: "alice"},
		{name: "missing header", header: "", want: defaultUserId},
		{name: "not a bearer header", header: "Basic abc123", want: defaultUserId},
		{name: "garbage token", header: "Bearer not.a.token", want: defaultUserId},
		{name: "wrong signing key", header: "Bearer " + wrongKey, want: defaultUserId},
		{name: "token without user_id", header: "Bearer " + noClaim, want: defaultUserId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveUserId(tt.header); got != tt.want {
				t.Errorf("resolveUserId = %q, want %q", got, tt.want)
			}
		})
	}
}
