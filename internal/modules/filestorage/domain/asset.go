package domain

import (
	"net/url"
	"strings"
)

// ResourceType is the coarse kind of an uploaded asset, detected from its content.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceAudio ResourceType = "audio"
	ResourceRaw   ResourceType = "raw"
)

// Asset describes a stored binary.
type Asset struct {
	ID           string
	Key          string
	URL          string
	ContentType  string
	ResourceType ResourceType
	Size         int64
}

// ResourceTypeOf maps a MIME type to its resource type.
func ResourceTypeOf(contentType string) ResourceType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return ResourceImage
	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "video/"):
		return ResourceAudio
	default:
		return ResourceRaw
	}
}

// AssetIDFromURL derives the content identifier of a permanent URL: the last
// path segment up to its first dot. The second result is false when nothing
// usable can be derived.
func AssetIDFromURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}

	segment := p[strings.LastIndex(p, "/")+1:]
	id, _, _ := strings.Cut(segment, ".")
	if id == "" {
		return "", false
	}
	return id, true
}

// MatchesAssetID reports whether a storage key (or file name) holds the asset
// with the given id, ignoring any directory prefix and extension.
func MatchesAssetID(key, assetID string) bool {
	base := key[strings.LastIndex(key, "/")+1:]
	id, _, _ := strings.Cut(base, ".")
	return id == assetID
}
