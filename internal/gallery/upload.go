package gallery

import (
	"context"
	"fmt"
	"io"
)

// LocalFile is a file picked for upload: a name, an optional MIME type and
// a content reader. An empty MIME type is recorded as
// "application/octet-stream".
type LocalFile struct {
	Name     string
	MimeType string
	Content  io.Reader
}

// UploadState is the observable progress of the one in-flight upload.
// Percent never regresses below a previously reported value.
type UploadState struct {
	FileName string
	Percent  int
}

// CurrentUpload returns the in-flight upload state, or false when idle.
func (g *Gallery) CurrentUpload() (UploadState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.upload == nil {
		return UploadState{}, false
	}
	return *g.upload, true
}

// Upload drives one file through the full flow: read the local content,
// generate a client-side id, store the bytes with progress, register the
// reference, then invalidate the caller's cached listing and quota.
//
// Only one upload is tracked at a time; the in-progress state is cleared
// on every exit path, success or failure, so the input control can be
// re-enabled. Failures are surfaced as a notice and returned; no automatic
// retry is attempted and partial state is discarded.
//
// onProgress, if non-nil, observes the displayed (monotonic) percentage.
func (g *Gallery) Upload(ctx context.Context, caller string, file LocalFile, onProgress func(UploadState)) error {
	g.mu.Lock()
	g.upload = &UploadState{FileName: file.Name}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.upload = nil
		g.mu.Unlock()
	}()

	data, err := io.ReadAll(file.Content)
	if err != nil {
		g.notifyFailure("Upload failed. Please try again.")
		return fmt.Errorf("reading local file %q: %w", file.Name, err)
	}

	id := g.idgen.New()

	handle, err := g.blobs.Store(ctx, id, data, func(percent int) {
		g.reportProgress(onProgress, percent)
	})
	if err != nil {
		g.notifyFailure("Upload failed. Please try again.")
		g.logger.Error("blob store failed", "file", file.Name, "error", err)
		return fmt.Errorf("storing content for %q: %w", file.Name, err)
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	ref := FileReference{
		ID:         id,
		BlobHandle: handle,
		Name:       file.Name,
		Size:       int64(len(data)),
		MimeType:   mimeType,
	}
	if err := g.registry.SaveFileReference(ctx, caller, ref); err != nil {
		g.notifyFailure("Upload failed. Please try again.")
		g.logger.Error("save reference failed", "file", file.Name, "error", err)
		return fmt.Errorf("saving reference for %q: %w", file.Name, err)
	}

	// Invalidation strictly follows the acknowledged save — never before.
	g.cache.Invalidate(caller)

	g.logger.Info("file uploaded", "file", file.Name, "id", id, "size", ref.Size)
	g.notifySuccess("%q uploaded successfully", file.Name)
	return nil
}

// reportProgress clamps the displayed percentage so it never moves
// backwards for the same upload, regardless of what the blob store
// reports, and forwards the update to the observer.
func (g *Gallery) reportProgress(onProgress func(UploadState), percent int) {
	g.mu.Lock()
	if g.upload == nil {
		g.mu.Unlock()
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > g.upload.Percent {
		g.upload.Percent = percent
	}
	state := *g.upload
	g.mu.Unlock()

	if onProgress != nil {
		onProgress(state)
	}
}
