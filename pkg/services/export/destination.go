package export

import (
	"fmt"
	"net/url"
	"strings"
)

type DestinationType int

const (
	DestinationFS DestinationType = iota
	DestinationBlob
	DestinationS3
)

func (t DestinationType) String() string {
	switch t {
	case DestinationFS:
		return "fs"
	case DestinationBlob:
		return "blob"
	case DestinationS3:
		return "s3"
	default:
		return fmt.Sprintf("destination(%d)", int(t))
	}
}

// Destination is a parsed export target. Exactly one of the location field
// groups is populated, selected by Type.
type Destination struct {
	Type       DestinationType
	Path       string // fs directory
	AccountURL string // blob service endpoint
	Container  string // blob container
	Bucket     string // s3 bucket
	Prefix     string // key prefix inside the container or bucket
}

const blobEndpointSuffix = ".blob.core.windows.net"

// ParseDestination classifies an export path. Supported forms:
//
//	/some/local/dir
//	https://<account>.blob.core.windows.net/<container>[/<prefix>]
//	s3://<bucket>[/<prefix>]
func ParseDestination(raw string) (Destination, error) {
	if raw == "" {
		return Destination{}, fmt.Errorf("export path must not be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Destination{}, fmt.Errorf("invalid export path %q: %w", raw, err)
	}

	switch parsed.Scheme {
	case "":
		return Destination{Type: DestinationFS, Path: raw}, nil
	case "s3":
		if parsed.Host == "" {
			return Destination{}, fmt.Errorf("s3 export path %q is missing a bucket", raw)
		}
		return Destination{
			Type:   DestinationS3,
			Bucket: parsed.Host,
			Prefix: strings.Trim(parsed.Path, "/"),
		}, nil
	case "http", "https":
		if !strings.HasSuffix(parsed.Host, blobEndpointSuffix) {
			return Destination{}, fmt.Errorf("unsupported export destination %q, expected a %s endpoint", raw, blobEndpointSuffix)
		}
		container, prefix := splitBlobPath(parsed.Path)
		if container == "" {
			return Destination{}, fmt.Errorf("blob export path %q is missing a container", raw)
		}
		return Destination{
			Type:       DestinationBlob,
			AccountURL: fmt.Sprintf("%s://%s/", parsed.Scheme, parsed.Host),
			Container:  container,
			Prefix:     prefix,
		}, nil
	default:
		return Destination{}, fmt.Errorf("unsupported export destination scheme %q", parsed.Scheme)
	}
}

func splitBlobPath(path string) (container, prefix string) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
