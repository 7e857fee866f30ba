package gallery

import "context"

// Registry is the remote service holding file metadata records keyed by id,
// scoped per caller. Implementations report unreachability as
// ErrRemoteUnavailable and remote-side refusals as ErrRejected; removing an
// unknown id is a surfaced ErrRejected, not a silent no-op.
type Registry interface {
	// ListFiles returns all of the caller's file records.
	ListFiles(ctx context.Context, caller string) ([]FileRecord, error)

	// SaveFileReference records a new file reference. The registry stamps
	// the record's UploadedAt; a record exists only after this succeeds.
	SaveFileReference(ctx context.Context, caller string, ref FileReference) error

	// RemoveFileReference deletes the record with the given id.
	RemoveFileReference(ctx context.Context, caller string, id string) error

	// GetUserProfile returns the caller's profile, or nil if none is set.
	GetUserProfile(ctx context.Context, caller string) (*UserProfile, error)

	// SaveUserProfile creates or replaces the caller's profile.
	SaveUserProfile(ctx context.Context, caller string, profile UserProfile) error

	// Quota returns the caller's storage quota in bytes.
	Quota(ctx context.Context, caller string) (int64, error)
}
