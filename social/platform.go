package social

// Platform identifies a supported social network. Each platform brings its
// own profile/content URL grammar (see extract.go) and its own authorship
// resolution strategy (see fetch.go).
type Platform string

const (
	PlatformMoj       Platform = "Moj"
	PlatformShareChat Platform = "ShareChat"
)

// ParsePlatform returns the typed platform for a client-supplied name.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformMoj:
		return PlatformMoj, true
	case PlatformShareChat:
		return PlatformShareChat, true
	}
	return "", false
}

func (p Platform) Valid() bool {
	_, ok := ParsePlatform(string(p))
	return ok
}
