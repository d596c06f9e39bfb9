package imageref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePlaceholderImages(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		fileID string
		base   string
		want   string
	}{
		{
			name: "no file id is a no-op",
			text: "[IMG_1_2]",
			want: "[IMG_1_2]",
		},
		{
			name:   "caption becomes alt",
			text:   "[IMG_1_2:a cat]",
			fileID: "fid_abc",
			want:   "![a cat](/api/tutorial/fid_abc/image/IMG_1_2)",
		},
		{
			name:   "default alt and base url",
			text:   "before [IMG_3_14] after",
			fileID: "fid_abc",
			base:   "http://localhost:8000/",
			want:   "before ![이미지](http://localhost:8000/api/tutorial/fid_abc/image/IMG_3_14) after",
		},
		{
			name:   "caption trimmed",
			text:   "[IMG_1_2:   chart  ]",
			fileID: "f",
			want:   "![chart](/api/tutorial/f/image/IMG_1_2)",
		},
		{
			name:   "blank caption falls back",
			text:   "[IMG_1_2:  ]",
			fileID: "f",
			want:   "![이미지](/api/tutorial/f/image/IMG_1_2)",
		},
		{
			name:   "several placeholders",
			text:   "[IMG_1_1] and [IMG_2_10:two]",
			fileID: "f",
			want:   "![이미지](/api/tutorial/f/image/IMG_1_1) and ![two](/api/tutorial/f/image/IMG_2_10)",
		},
		{
			name:   "malformed ids untouched",
			text:   "[IMG_x_y] [IMG_1] [IMG_1_2_3]",
			fileID: "f",
			want:   "[IMG_x_y] [IMG_1] [IMG_1_2_3]",
		},
		{
			name:   "file id escaped",
			text:   "[IMG_1_2]",
			fileID: "a b/c",
			want:   "![이미지](/api/tutorial/a%20b%2Fc/image/IMG_1_2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewritePlaceholderImages(tt.text, tt.fileID, tt.base))
		})
	}
}

func TestRewritePlaceholderImages_URLParts(t *testing.T) {
	out := RewritePlaceholderImages("[IMG_1_2:a cat]", "fid_abc", "")
	assert.Contains(t, out, "![a cat](")
	assert.Contains(t, out, "fid_abc")
	assert.Contains(t, out, "IMG_1_2")
}

func TestPrepare(t *testing.T) {
	// Placeholder output is a markdown image, so the URI pass is skipped.
	got := Prepare("[IMG_1_2] http://x.com/a.png", "f", "")
	assert.Equal(t, "![이미지](/api/tutorial/f/image/IMG_1_2) http://x.com/a.png", got)

	got = Prepare("[IMG_1_2] http://x.com/a.png", "", "")
	assert.Equal(t, "[IMG_1_2] ![이미지](http://x.com/a.png)", got)
}

func TestBaseResolver(t *testing.T) {
	r := NewBaseResolver("")
	assert.Equal(t, DevAPIURL, r.Resolve("localhost:3000"))
	assert.Equal(t, DevAPIURL, r.Resolve("127.0.0.1"))
	assert.Equal(t, DevAPIURL, r.Resolve("LOCALHOST"))
	assert.Equal(t, "", r.Resolve("genie.example.com"))
	assert.Equal(t, "", r.Resolve(""))

	r = NewBaseResolver("https://api.example.com")
	assert.Equal(t, "https://api.example.com", r.Resolve("localhost:3000"))
	assert.Equal(t, "https://api.example.com", r.Resolve("genie.example.com"))
}
