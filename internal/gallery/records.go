package gallery

// FileRecord is one stored object as the registry reports it.
// UploadedAt is nanoseconds since the Unix epoch; display code derives
// milliseconds by integer division, discarding the sub-millisecond remainder.
type FileRecord struct {
	ID         string
	Name       string
	Size       int64
	MimeType   string
	UploadedAt int64
}

// UploadedAtMillis returns the upload timestamp truncated to milliseconds.
func (f FileRecord) UploadedAtMillis() int64 {
	return f.UploadedAt / 1_000_000
}

// FileReference is the payload of a registry save operation. The registry
// stamps UploadedAt on the resulting record when it acknowledges the save;
// the ID is client-generated and immutable afterwards.
type FileReference struct {
	ID         string
	BlobHandle string
	Name       string
	Size       int64
	MimeType   string
}

// UserProfile is the per-caller profile held by the registry.
type UserProfile struct {
	Name string
}

// DefaultQuotaBytes is the per-caller storage quota used when the registry
// has no explicit quota recorded for a caller.
const DefaultQuotaBytes int64 = 1_099_511_627_776_000
