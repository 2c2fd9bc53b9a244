// Package urlnorm canonicalizes product URLs and derives the stable
// fingerprint used as the cache key. Two URLs that differ only in tracking
// parameters, case, "www." prefix, parameter order, fragment, or a trailing
// slash map to the same fingerprint.
package urlnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameters stripped during normalization.
// Matched case-insensitively on the key.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"referrer":     {},
	"source":       {},
	"campaign":     {},
	"gclid":        {},
	"fbclid":       {},
	"_encoding":    {},
	"psc":          {},
	"qid":          {},
	"sr":           {},
	"keywords":     {},
	"ie":           {},
}

// Normalize canonicalizes a product URL. On any parse failure the original
// string is returned unchanged so that a bad URL never fails the pipeline;
// callers that need scheme validation use Validate.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	path := strings.TrimRight(u.Path, "/")

	// Filter tracking params, then sort the survivors by key for a stable
	// serialization.
	kept := url.Values{}
	for key, vals := range u.Query() {
		if _, tracking := trackingParams[strings.ToLower(key)]; tracking {
			continue
		}
		for _, v := range vals {
			kept.Add(key, v)
		}
	}

	var query string
	if len(kept) > 0 {
		keys := make([]string, 0, len(kept))
		for k := range kept {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		for _, k := range keys {
			for _, v := range kept[k] {
				if sb.Len() > 0 {
					sb.WriteByte('&')
				}
				sb.WriteString(url.QueryEscape(k))
				sb.WriteByte('=')
				sb.WriteString(url.QueryEscape(v))
			}
		}
		query = sb.String()
	}

	normalized := scheme + "://" + host + path
	if query != "" {
		normalized += "?" + query
	}
	// Fragment and userinfo are intentionally dropped.
	return normalized
}

// Fingerprint returns the 64-hex SHA-256 of the canonical URL bytes.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(Normalize(raw)))
	return hex.EncodeToString(sum[:])
}

// Validate reports whether the URL parses and uses an http(s) scheme with a
// non-empty host. Gateway input validation only; normalization itself never
// rejects.
func Validate(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

var platforms = []string{"amazon", "flipkart", "myntra", "ajio", "snapdeal", "meesho", "nykaa"}

// DetectPlatform identifies the e-commerce platform from the URL host.
func DetectPlatform(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "unknown"
	}
	host := strings.ToLower(u.Host)
	for _, p := range platforms {
		if strings.Contains(host, p) {
			return p
		}
	}
	return "unknown"
}

// SupportedPlatforms lists the platforms DetectPlatform recognizes.
func SupportedPlatforms() []string {
	out := make([]string, len(platforms))
	copy(out, platforms)
	return out
}
