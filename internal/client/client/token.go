package client

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenUsername returns the "username" claim of a login token. The
// signature is not verified; only the remote service can do that.
func TokenUsername(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("%w: no username claim", ErrMalformedToken)
	}
	return username, nil
}
