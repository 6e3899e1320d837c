// Package dataurl builds and checks the inline data URLs the dashboard uses
// for avatars and news images; no image ever leaves the service as a file.
package dataurl

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const imagePrefix = "data:image/"

// EncodeImage sniffs the payload's content type and wraps it in a
// base64 data URL. Non-image payloads are rejected.
func EncodeImage(payload []byte) (string, error) {
	contentType := http.DetectContentType(payload)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(payload)), nil
}

// IsImage reports whether s looks like a base64 image data URL.
func IsImage(s string) bool {
	if !strings.HasPrefix(s, imagePrefix) {
		return false
	}
	rest := s[len(imagePrefix):]
	marker := strings.Index(rest, ";base64,")
	if marker < 0 {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(rest[marker+len(";base64,"):])
	return err == nil
}
