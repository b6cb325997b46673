package utils

import (
	"encoding/hex"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"
)

// TokenClaims is the part of a forwarded admin token the console reads
type TokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// InspectToken reads the claims of a JWT without verifying its signature. The
// loyalty API verifies the token; the console only needs to tell operators apart.
func InspectToken(token string) (*TokenClaims, bool) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// Fingerprint returns a short stable digest of a token
func Fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:12])
}

// OperatorIdentity returns a stable id and a display name for a token. The id
// is a fingerprint of the whole token since the claims are not verified here;
// the claims only supply the display name.
func OperatorIdentity(token string) (id, name string) {
	token = strings.TrimSpace(token)
	if claims, ok := InspectToken(token); ok {
		switch {
		case claims.Name != "":
			name = claims.Name
		case claims.Email != "":
			name = claims.Email
		default:
			name = claims.Subject
		}
	}
	return "tok:" + Fingerprint(token), name
}
