package cache

import (
	"sort"
	"strings"
)

// Key builds a deterministic cache key from a prefix and logical request
// parts. Parts are sorted before joining, so equivalent multi-item queries
// collide to the same key regardless of upstream ordering.
func Key(prefix string, parts ...string) string {
	sorted := make([]string, len(parts))
	copy(sorted, parts)
	sort.Strings(sorted)
	return prefix + ":" + strings.Join(sorted, ":")
}
