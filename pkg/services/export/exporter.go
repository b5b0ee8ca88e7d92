package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/de-tools/energy-labeler/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Writer persists one rendered document at a destination.
type Writer interface {
	Write(ctx context.Context, filename string, data []byte) error
}

// WriterOptions carries the credentials writers may need. Blob destinations
// reuse the tenant credentials, S3 destinations go through an AWS profile.
type WriterOptions struct {
	Credentials azcore.TokenCredential
	AWSProfile  string
}

// NewWriter builds the writer matching a parsed destination.
func NewWriter(ctx context.Context, dest Destination, opts WriterOptions) (Writer, error) {
	switch dest.Type {
	case DestinationFS:
		return NewFSWriter(dest.Path), nil
	case DestinationBlob:
		return NewBlobWriter(dest, opts.Credentials)
	case DestinationS3:
		return NewS3Writer(ctx, dest, opts.AWSProfile)
	default:
		return nil, fmt.Errorf("unsupported destination type %s", dest.Type)
	}
}

// Exporter renders a tenant report into its configured documents.
type Exporter struct {
	kinds  []Kind
	writer Writer
}

func NewExporter(kinds []Kind, writer Writer) *Exporter {
	return &Exporter{kinds: kinds, writer: writer}
}

// Export writes every configured document. A failing document does not stop
// the others, the errors are collected and returned together.
func (e *Exporter) Export(ctx context.Context, report *domain.TenantReport) error {
	var errs []error
	for _, kind := range e.kinds {
		file, ok := lookupByKind(kind)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown export kind %d", int(kind)))
			continue
		}

		data, err := json.MarshalIndent(file.build(report), "", "  ")
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to encode %s: %w", file.filename, err))
			continue
		}

		if err := e.writer.Write(ctx, file.filename, data); err != nil {
			errs = append(errs, err)
			continue
		}

		zerolog.Ctx(ctx).Info().
			Str("file", file.filename).
			Msg("exported document")
	}
	return errors.Join(errs...)
}
