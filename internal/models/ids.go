package models

import (
	"strconv"
	"strings"
)

// ValidEntityID reports whether s has the ledger entity id shape
// shard.realm.num, e.g. "0.0.1234". Token, account and schedule ids all share
// this shape.
func ValidEntityID(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
		if _, err := strconv.ParseUint(part, 10, 64); err != nil {
			return false
		}
	}
	return true
}
