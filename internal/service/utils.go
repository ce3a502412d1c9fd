package service

import "strings"

// sanitizeUTF8 drops invalid UTF-8 so lead text can be stored in Postgres
// and rendered in mail bodies.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
