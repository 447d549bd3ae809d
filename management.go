package formwizard

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// managementSigner signs and verifies the management marker: the
// anti-tampering payload asserting which step the client believes is
// current. The marker is an HS256 token carried in a hidden form field
// (ManagementField).
type managementSigner struct {
	secret []byte
}

// sign produces the marker for a step, embedded into the rendered
// form.
func (m managementSigner) sign(step string) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"step": step,
	}).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("formwizard: sign management marker: %w", err)
	}
	return token, nil
}

// verify checks a submitted marker and returns the step it asserts.
// Any structural problem (missing, forged, wrong algorithm, missing
// claim) is ErrManagementTampered — always fatal to the request.
func (m managementSigner) verify(token string) (string, error) {
	if token == "" {
		return "", ErrManagementTampered
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManagementTampered, err)
	}

	step, ok := claims["step"].(string)
	if !ok || step == "" {
		return "", ErrManagementTampered
	}
	return step, nil
}
