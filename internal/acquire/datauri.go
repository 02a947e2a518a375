package acquire

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// decodeDataURI extracts the raw payload bytes from a data: URI. Both
// base64 and percent-encoded payloads are supported.
func decodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: missing payload")
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode base64 payload: %w", err)
		}
		return data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decode percent-encoded payload: %w", err)
	}
	return []byte(decoded), nil
}
