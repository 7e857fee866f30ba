package gallery

import "context"

// BlobStore holds raw file bytes addressed by id. The core never inspects
// the transport; failures surface as ErrBlobUnavailable.
type BlobStore interface {
	// FetchBytes returns the full content stored under id.
	FetchBytes(ctx context.Context, id string) ([]byte, error)

	// DirectURL resolves a directly shareable URL for id.
	DirectURL(ctx context.Context, id string) (string, error)

	// Store uploads data under id and returns an opaque handle for the
	// registry reference. onProgress, if non-nil, receives percentages in
	// [0,100] as the upload advances; implementations need not guarantee
	// monotonicity — the upload orchestrator clamps what it displays.
	Store(ctx context.Context, id string, data []byte, onProgress func(percent int)) (handle string, err error)
}
