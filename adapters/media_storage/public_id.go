package media_storage

import (
	"regexp"
	"strings"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL recovers the Cloudinary public id (including folder) from
// a delivery URL, so assets can be destroyed when their record is deleted
// or replaced. Returns "" when the URL is not a Cloudinary delivery URL.
func PublicIDFromURL(rawURL string) string {
	idx := strings.Index(rawURL, "/upload/")
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len("/upload/"):]

	segments := strings.Split(rest, "/")
	if len(segments) > 0 && versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return ""
	}

	publicID := strings.Join(segments, "/")
	if dot := strings.LastIndex(publicID, "."); dot > 0 {
		publicID = publicID[:dot]
	}
	return publicID
}
