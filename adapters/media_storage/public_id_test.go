package media_storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned video url",
			url:  "https://res.cloudinary.com/demo/video/upload/v1699999999/users/abc/videos/file.mp4",
			want: "users/abc/videos/file",
		},
		{
			name: "versioned image url",
			url:  "https://res.cloudinary.com/demo/image/upload/v123/users/avatars/user-1.jpg",
			want: "users/avatars/user-1",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/users/covers/user-1.png",
			want: "users/covers/user-1",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/users/avatars/user-1",
			want: "users/avatars/user-1",
		},
		{
			name: "not a delivery url",
			url:  "https://example.com/some/other/path.jpg",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}
