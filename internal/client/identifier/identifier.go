// Package identifier tells opaque resource IDs apart from human-readable aliases.
package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// IsUUID reports whether s is an opaque UUID identifier in its canonical
// 36-character form. Anything else is treated as an alias.
func IsUUID(s string) bool {
	if len(s) != 36 || strings.Count(s, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
