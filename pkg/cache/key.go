package cache

import (
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every cache entry in Redis.
const KeyPrefix = "arcivia:met"

// Key identifies a cached collection API response.
type Key struct {
	// Path is the request path relative to the API base (e.g. "/objects/436535").
	Path string

	// Query holds the request query parameters.
	Query url.Values
}

// String generates a deterministic cache key string.
// Format: arcivia:met:path:k1=v1:k2=v2a,v2b
//
// Example:
//
//	arcivia:met:search:hasImages=true:q=mask
func (k Key) String() string {
	parts := []string{KeyPrefix}

	if path := strings.Trim(k.Path, "/"); path != "" {
		parts = append(parts, path)
	}

	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			values := append([]string(nil), k.Query[name]...)
			sort.Strings(values)
			parts = append(parts, name+"="+strings.Join(values, ","))
		}
	}

	return strings.Join(parts, ":")
}
