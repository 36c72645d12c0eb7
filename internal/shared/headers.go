// Utilities for turning a copied browser cURL command into the ytmusicapi
// browser-auth headers file the proxy consumes.
package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// AuthHeaders represents headers and cookies parsed from a cURL command.
type AuthHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	curlHeaderRe = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRe = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command copied from the
// browser's network inspector and extracts its headers.
func ParseCurlFile(path string) (*AuthHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}
	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers and the
// session cookie, whether given via -b or a Cookie header.
func ParseCurlCommand(data []byte) (*AuthHeaders, error) {
	cmd := string(data)
	cmd = strings.ReplaceAll(cmd, "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	auth := &AuthHeaders{Headers: make(map[string]string)}

	for _, match := range curlHeaderRe.FindAllStringSubmatch(cmd, -1) {
		line := match[1]
		if line == "" {
			line = match[2]
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if auth.Cookie == "" {
				auth.Cookie = value
			}
			continue
		}
		auth.Headers[key] = value
	}

	if m := curlCookieRe.FindStringSubmatch(cmd); len(m) > 1 {
		if m[1] != "" {
			auth.Cookie = m[1]
		} else if m[2] != "" {
			auth.Cookie = m[2]
		}
	}

	if len(auth.Headers) == 0 && auth.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}

	return auth, nil
}

// ToHeadersRaw converts parsed headers to the newline-separated
// "Key: Value" format ytmusicapi accepts as headers_raw. Keys are sorted
// for stable output.
func (a *AuthHeaders) ToHeadersRaw() string {
	keys := make([]string, 0, len(a.Headers))
	for key := range a.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, a.Headers[key]))
	}
	if a.Cookie != "" {
		lines = append(lines, fmt.Sprintf("cookie: %s", a.Cookie))
	}

	return strings.Join(lines, "\n")
}

// AuthFileJSON renders the headers as the JSON document ytmusicapi expects
// in a browser-auth file.
func (a *AuthHeaders) AuthFileJSON() ([]byte, error) {
	doc := make(map[string]string, len(a.Headers)+1)
	for key, value := range a.Headers {
		doc[key] = value
	}
	if a.Cookie != "" {
		doc["cookie"] = a.Cookie
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteAuthFile writes the browser-auth JSON document to path.
func (a *AuthHeaders) WriteAuthFile(path string) error {
	data, err := a.AuthFileJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal auth headers: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
