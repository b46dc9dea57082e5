package app

import "strings"

// Traced statements are collapsed to one line and capped so span
// attributes stay readable for the wide multi-row upserts.
const tracedQueryLimit = 512

func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > tracedQueryLimit {
		return compact[:tracedQueryLimit] + "..."
	}

	return compact
}
