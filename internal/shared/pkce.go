package shared

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateCodeVerifier returns a fresh PKCE code verifier for the
// MyAnimeList authorization flow. 64 random bytes encode to 86 URL-safe
// characters, within the 43..128 range RFC 7636 requires.
func GenerateCodeVerifier() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
