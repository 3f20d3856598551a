// Package sanitize strips HTML and script content from free-text inputs
// (usernames, task titles, descriptions) before they are persisted.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows no tags or attributes at all; markup is removed, text is kept.
var policy = bluemonday.StrictPolicy()

// Clean removes all markup from s and trims surrounding whitespace.
// It never fails: a string with nothing to strip comes back unchanged.
func Clean(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
