package userconfig

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// TokenPrefix is how base64 of a JSON object ("{\"") always starts.
const TokenPrefix = "ey"

var (
	ErrNotToken       = errors.New("userconfig: not a configuration token")
	ErrMalformedToken = errors.New("userconfig: malformed configuration token")
)

var tokenEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

// Encode serializes c to JSON and returns it as an unpadded URL-safe base64 token.
func Encode(c *Configuration) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("userconfig: marshal: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a token produced by Encode. Tokens written with the standard
// alphabet, padded or not, are accepted as well.
func Decode(token string) (*Configuration, error) {
	raw, err := url.PathUnescape(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if !strings.HasPrefix(raw, TokenPrefix) {
		return nil, ErrNotToken
	}

	data, err := decodeBase64(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	c := &Configuration{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return c, nil
}

func decodeBase64(s string) ([]byte, error) {
	var lastErr error
	for _, enc := range tokenEncodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// TokenFromConfigurePath extracts <token> from a path shaped /<token>/configure.
func TokenFromConfigurePath(p string) (string, bool) {
	p = strings.TrimSuffix(p, "/")
	rest, ok := strings.CutSuffix(p, "/configure")
	if !ok {
		return "", false
	}

	idx := strings.LastIndex(rest, "/")
	if idx < 0 {
		return "", false
	}

	token := rest[idx+1:]
	if token == "" {
		return "", false
	}

	return token, true
}

// ParseConfigureURL decodes the configuration carried by a configure page URL.
// It reports false for every URL that does not carry a usable token.
func ParseConfigureURL(rawURL string) (*Configuration, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}

	path := u.EscapedPath()
	token, ok := TokenFromConfigurePath(path)
	if !ok {
		return nil, false
	}

	c, err := Decode(token)
	if err != nil {
		return nil, false
	}

	return c, true
}

func ManifestPath(token string) string {
	return "/" + token + "/manifest.json"
}

func ConfigurePath(token string) string {
	return "/" + token + "/configure"
}
