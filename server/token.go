package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dekarrin/fixgo/server/result"
)

// issueToken mints a bearer token for fixgod clients, signed with secret.
// There is no user store behind these tokens the way the JWT counterpart in
// the teacher's server/token.go has one: possession of a correctly-signed
// token, not a looked-up identity, is what authorizes a /runs request, so
// sub just labels who asked for the token rather than naming a row in a
// users table.
func issueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "fixgod",
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

func verifyToken(secret []byte, tok string) error {
	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("fixgod"), jwt.WithLeeway(time.Minute))
	return err
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// requireAuth is middleware gating every /runs route behind a valid bearer
// token, the chi-mounted counterpart of the teacher's AuthHandler.
func requireAuth(secret []byte, unauthDelay time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err == nil {
			err = verifyToken(secret, tok)
		}
		if err != nil {
			time.Sleep(unauthDelay)
			result.Unauthorized("A valid bearer token is required").WriteResponse(w)
			return
		}
		next.ServeHTTP(w, req)
	})
}
