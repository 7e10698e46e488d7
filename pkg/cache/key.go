// Package cache provides optional Redis-backed caching of Candid response
// pages. Each quota-limited request that can be answered from cache is one
// request that does not count against the 9-per-minute budget.
package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached response page. Two requests with the same query
// parameters are the same page.
type Key struct {
	// QueryParams are the full request query parameters, page included.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: candid:param1=val1:param2=val2 with parameters sorted by name.
func (k Key) String() string {
	parts := []string{"candid"}

	keys := make([]string, 0, len(k.QueryParams))
	for key := range k.QueryParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
	}

	return strings.Join(parts, ":")
}
