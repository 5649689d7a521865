package models

import (
	"mime"
	"strconv"
	"strings"
)

// oneM2M HTTP binding header names.
const (
	HeaderOrigin         = "X-M2M-Origin"
	HeaderRequestID      = "X-M2M-RI"
	HeaderReleaseVersion = "X-M2M-RVI"
	HeaderRSC            = "X-M2M-RSC"
)

// MediaTypeJSON is the only serialization supported by the binding.
const MediaTypeJSON = "application/json"

// ContentTypeFor returns the Content-Type of a CREATE request, e.g.
// "application/json;ty=4".
func ContentTypeFor(ty ResourceType) string {
	if ty == TypeUnknown {
		return MediaTypeJSON
	}
	return MediaTypeJSON + ";ty=" + strconv.Itoa(int(ty))
}

// ParseContentType returns the media type and the ty parameter of a
// Content-Type header. A missing or malformed ty yields TypeUnknown.
func ParseContentType(header string) (string, ResourceType) {
	if strings.TrimSpace(header) == "" {
		return "", TypeUnknown
	}

	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		// tolerate "application/json; ty=4" variants the mime parser rejects
		parts := strings.Split(header, ";")
		mediaType = strings.ToLower(strings.TrimSpace(parts[0]))
		params = map[string]string{}
		for _, p := range parts[1:] {
			if k, v, ok := strings.Cut(strings.TrimSpace(p), "="); ok {
				params[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
			}
		}
	}

	ty, _ := ParseResourceType(params["ty"])
	return mediaType, ty
}
