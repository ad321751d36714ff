package supabase

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

// UserIDFromRequest returns the Supabase user id carried by the bearer token.
func UserIDFromRequest(r *http.Request, secret string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	jwtString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if jwtString == "" {
		return "", fmt.Errorf("invalid Authorization header")
	}
	return UserIDFromToken(jwtString, secret)
}

// UserIDFromToken extracts the "sub" claim. With a secret the HS256
// signature and expiry are verified; without one the token is only decoded.
func UserIDFromToken(jwtString, secret string) (string, error) {
	var (
		token *jwt.Token
		err   error
	)
	if secret == "" {
		token, _, err = new(jwt.Parser).ParseUnverified(jwtString, jwt.MapClaims{})
	} else {
		token, err = jwt.Parse(jwtString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
	}
	if err != nil {
		return "", fmt.Errorf("invalid JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid JWT claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing sub in token")
	}
	return sub, nil
}

func GenerateTestJWT(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
