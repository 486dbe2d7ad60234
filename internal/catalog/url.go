package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params maps query parameter names to values. Supported values are strings,
// every built-in integer and float kind, bools, fmt.Stringer, *string, *int
// and nil.
type Params map[string]any

// BuildURL returns base with the token and every non-blank parameter set in
// the query string. Blank, nil and unsupported values are left out entirely;
// a "token" entry in params never overrides the auth token.
func BuildURL(base, token string, params Params) (string, error) {
	u, err := parseHTTPURL(base)
	if err != nil {
		return "", err
	}

	values := u.Query()
	values.Set(ParamToken, token)
	for key, raw := range params {
		if key == ParamToken || strings.TrimSpace(key) == "" {
			continue
		}
		if value, ok := paramValue(raw); ok {
			values.Set(key, value)
		}
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

func paramValue(raw any) (string, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		s = v
	case *string:
		if v == nil {
			return "", false
		}
		s = *v
	case Text:
		s = string(v)
	case int:
		s = strconv.Itoa(v)
	case *int:
		if v == nil {
			return "", false
		}
		s = strconv.Itoa(*v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprint(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		s = strconv.FormatBool(v)
	case fmt.Stringer:
		s = v.String()
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// SafeURL returns the normalized form of raw when it is a well-formed absolute
// http or https URL with a host.
func SafeURL(raw string) (string, bool) {
	u, err := parseHTTPURL(raw)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// IsHTTPURL reports whether raw is a well-formed absolute http(s) URL.
func IsHTTPURL(raw string) bool {
	_, ok := SafeURL(raw)
	return ok
}

func parseHTTPURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", trimmed, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("url %q is not http(s)", trimmed)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", trimmed)
	}
	return u, nil
}
