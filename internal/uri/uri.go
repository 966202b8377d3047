package uri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Kind classifies a media URI by the transport needed to fetch it
type Kind string

const (
	// KindData is an inline data: URI, decoded without any network call
	KindData Kind = "data"
	// KindArweave is an archival-storage reference (ar://)
	KindArweave Kind = "arweave"
	// KindIPFS is a content-addressed storage reference (ipfs:// or a
	// gateway URL carrying an /ipfs/ path)
	KindIPFS Kind = "ipfs"
	// KindHTTP is an already-resolved http(s) URL used as-is
	KindHTTP Kind = "http"
	// KindUnknown is anything else
	KindUnknown Kind = "unknown"
)

// Classify determines the transport for a URI. Classification order matters:
// data URIs never touch the network, and gateway URLs embedding an /ipfs/
// path are re-resolved through the configured gateway list rather than pinned
// to whatever gateway the provider happened to emit.
func Classify(uri string) Kind {
	switch {
	case strings.HasPrefix(uri, "data:"):
		return KindData
	case strings.HasPrefix(uri, "ar://"):
		return KindArweave
	case strings.HasPrefix(uri, "ipfs://"):
		return KindIPFS
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		if strings.Contains(uri, "/ipfs/") {
			return KindIPFS
		}
		return KindHTTP
	default:
		return KindUnknown
	}
}

// ExtractCID pulls the content identifier (with any subpath) out of an
// ipfs:// URI or a gateway URL
func ExtractCID(uri string) (string, bool) {
	if cid, ok := strings.CutPrefix(uri, "ipfs://"); ok && cid != "" {
		return cid, true
	}
	if _, after, ok := strings.Cut(uri, "/ipfs/"); ok && after != "" {
		return after, true
	}
	return "", false
}

// DecodeDataURI decodes an inline data: URI and returns the payload with its
// declared media type
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: missing payload separator")
	}

	mediaType := "text/plain"
	isBase64 := false
	if meta != "" {
		parts := strings.Split(meta, ";")
		if parts[0] != "" {
			mediaType = parts[0]
		}
		for _, p := range parts[1:] {
			if p == "base64" {
				isBase64 = true
			}
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		return data, mediaType, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to unescape payload: %w", err)
	}
	return []byte(decoded), mediaType, nil
}
