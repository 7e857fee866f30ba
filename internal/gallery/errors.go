package gallery

import "errors"

// Collaborator failure taxonomy. Backends wrap these sentinels with %w so
// orchestrators can classify failures without knowing the transport.
var (
	// ErrRemoteUnavailable means the registry could not be reached.
	ErrRemoteUnavailable = errors.New("registry unavailable")

	// ErrRejected means the registry refused the operation (validation,
	// quota, unknown id on remove).
	ErrRejected = errors.New("rejected by registry")

	// ErrBlobUnavailable means the blob store could not serve the request.
	ErrBlobUnavailable = errors.New("blob store unavailable")

	// ErrClipboardDenied means the host refused the clipboard write.
	ErrClipboardDenied = errors.New("clipboard write denied")
)
