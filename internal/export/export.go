// Package export writes read-only flow configuration snapshots
package export

import (
	"context"
	"encoding/json"

	"gocloud.dev/blob"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/crewflow/console/pkg/api"
)

// Exporter writes pretty-printed flow documents to a blob bucket. An
// export is a plain snapshot, not a live contract
type Exporter struct {
	bucket *blob.Bucket
}

const defaultFileName = "flow"

// NewExporter opens the bucket behind the given URL (file://, mem://,
// or any other registered blob scheme)
func NewExporter(ctx context.Context, bucketURL string) (*Exporter, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return &Exporter{bucket: bucket}, nil
}

// Export writes the document under a key derived from the flow name and
// returns that key
func (e *Exporter) Export(
	ctx context.Context, doc *api.FlowConfiguration,
) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	key := FileName(doc.Name)
	opts := &blob.WriterOptions{
		ContentType: "application/json",
	}
	if err := e.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", err
	}
	return key, nil
}

// Close releases the underlying bucket
func (e *Exporter) Close() error {
	return e.bucket.Close()
}

// FileName derives the export file name from a flow name: lowercased,
// non-alphanumeric characters replaced, with a .json suffix
func FileName(name string) string {
	sanitized := api.SanitizeID(name)
	if sanitized == "" {
		sanitized = defaultFileName
	}
	return sanitized + ".json"
}
