package extraction

import "context"

// Extractor is the remote extraction boundary. Given a base64-encoded
// document payload and its MIME type it returns candidate transaction
// records, or fails with a single error. Implementations must not retry on
// their own; failure handling belongs to the pipeline.
type Extractor interface {
	Extract(ctx context.Context, payload string, mimeType string) ([]RawTransaction, error)
}
