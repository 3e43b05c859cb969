package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform Platform
		want     string
		ok       bool
	}{
		{"moj profile", "https://mojapp.in/@alice", PlatformMoj, "alice", true},
		{"moj with dots and underscores", "https://mojapp.in/@alice_rose.99", PlatformMoj, "alice_rose.99", true},
		{"moj video url", "https://mojapp.in/@alice/video/123456", PlatformMoj, "alice", true},
		{"moj trailing whitespace", "  https://mojapp.in/@alice  ", PlatformMoj, "alice", true},
		{"moj no sigil", "https://mojapp.in/alice", PlatformMoj, "", false},
		{"sharechat profile", "https://sharechat.com/profile/bob", PlatformShareChat, "bob", true},
		{"sharechat post under profile", "https://sharechat.com/profile/bob/post/xyz", PlatformShareChat, "bob", true},
		{"sharechat post url without profile", "https://sharechat.com/post/xyz", PlatformShareChat, "", false},
		{"wrong platform grammar", "https://sharechat.com/profile/bob", PlatformMoj, "", false},
		{"malformed url", "://not-a-url", PlatformMoj, "", false},
		{"relative url", "/@alice", PlatformMoj, "", false},
		{"empty", "", PlatformShareChat, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractHandle(tt.url, tt.platform)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform("Moj")
	assert.True(t, ok)
	assert.Equal(t, PlatformMoj, p)

	_, ok = ParsePlatform("TikTok")
	assert.False(t, ok)

	assert.True(t, PlatformShareChat.Valid())
	assert.False(t, Platform("").Valid())
}

func TestHandlesEqual(t *testing.T) {
	assert.True(t, HandlesEqual("Alice", "alice"))
	assert.True(t, HandlesEqual(" alice ", "ALICE"))
	assert.False(t, HandlesEqual("alice", "bob"))
}
