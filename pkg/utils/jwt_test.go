package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestOperatorIdentity(t *testing.T) {
	withEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		Email:            "ops@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	subjectOnly, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "9"},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		wantID   string
		wantName string
	}{
		{"email as display name", withEmail, "tok:" + Fingerprint(withEmail), "ops@example.com"},
		{"subject as display name", subjectOnly, "tok:" + Fingerprint(subjectOnly), "9"},
		{"opaque", "abc123", "tok:" + Fingerprint("abc123"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := OperatorIdentity(tt.token)
			if id != tt.wantID || name != tt.wantName {
				t.Errorf("OperatorIdentity() = %q, %q, want %q, %q", id, name, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a, b := Fingerprint("token-a"), Fingerprint("token-b")
	if len(a) != 24 {
		t.Errorf("len = %d, want 24", len(a))
	}
	if a == b || a != Fingerprint("token-a") {
		t.Errorf("fingerprints not stable and distinct: %s %s", a, b)
	}
	if strings.Contains(a, "token") {
		t.Errorf("fingerprint leaks the token")
	}
}

func TestOperatorIdentity_ForgedSubjectGetsItsOwnID(t *testing.T) {
	claims := TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"}}
	genuine, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	genuineID, _ := OperatorIdentity(genuine)
	forgedID, forgedName := OperatorIdentity(forged)
	if genuineID == forgedID {
		t.Errorf("forged token shares id %q with the genuine one", forgedID)
	}
	if forgedName != "admin-1" {
		t.Errorf("name = %q, want admin-1", forgedName)
	}
}
