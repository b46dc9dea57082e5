package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL opts the connection out of binary result encoding when
// configured. Only URL-style connection strings are rewritten; key=value
// DSNs pass through untouched because url.Parse cannot round-trip them.
func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	params := u.Query()
	if params.Has("disable_prepared_binary_result") {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = params.Encode()

	return u.String()
}

// dbNameFromURL extracts the database name for the db.name span
// attribute, accepting both URL and key=value connection strings.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if u, err := url.Parse(raw); err == nil && u != nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"' `); name != "" {
			return name
		}
	}

	return ""
}
