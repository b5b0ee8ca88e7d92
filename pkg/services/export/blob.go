package export

import (
	"context"
	"fmt"
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type blobWriter struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewBlobWriter uploads documents to an Azure storage container, overwriting
// blobs from earlier runs.
func NewBlobWriter(dest Destination, credentials azcore.TokenCredential) (Writer, error) {
	client, err := azblob.NewClient(dest.AccountURL, credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for %s: %w", dest.AccountURL, err)
	}
	return &blobWriter{
		client:    client,
		container: dest.Container,
		prefix:    dest.Prefix,
	}, nil
}

func (w *blobWriter) Write(ctx context.Context, filename string, data []byte) error {
	name := path.Join(w.prefix, filename)
	if _, err := w.client.UploadBuffer(ctx, w.container, name, data, nil); err != nil {
		return fmt.Errorf("failed to upload blob %s/%s: %w", w.container, name, err)
	}
	return nil
}
