package social

import (
	"net/url"
	"regexp"
	"strings"
)

var mojHandleRe = regexp.MustCompile(`@([a-zA-Z0-9_.]+)`)

// ExtractHandle derives the canonical username from a profile or content URL
// without touching the network. Malformed or non-matching input is a normal
// case (URLs come straight from users) and yields ok=false, never a panic.
//
// Grammars:
//
//	Moj:       any path segment of the form @handle
//	ShareChat: the segment following a literal /profile/ component
func ExtractHandle(rawURL string, p Platform) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	switch p {
	case PlatformMoj:
		if m := mojHandleRe.FindStringSubmatch(u.Path); m != nil {
			return m[1], true
		}
	case PlatformShareChat:
		if h := handleAfterProfile(u.Path); h != "" {
			return h, true
		}
	}
	return "", false
}

// handleAfterProfile pulls the handle out of a path containing /profile/.
func handleAfterProfile(path string) string {
	_, rest, found := strings.Cut(path, "/profile/")
	if !found {
		return ""
	}
	handle, _, _ := strings.Cut(rest, "/")
	return handle
}

// HandlesEqual compares two handles the way ownership checks must: case
// insensitively, with surrounding whitespace ignored.
func HandlesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
