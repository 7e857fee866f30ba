package gallery

import (
	"context"
	"fmt"
	"strings"
)

// DownloadSink receives fetched file content and materializes a local save
// action for it.
type DownloadSink interface {
	Save(name string, data []byte) error
}

// DownloadAll fetches each file's bytes and hands them to the sink,
// strictly one item at a time with a configurable pause between items. A
// failed item is reported by name and the loop moves on; one bad item
// never aborts the batch. The closing notice reports the attempted total,
// not the success count — the per-item notices carry the failures.
func (g *Gallery) DownloadAll(ctx context.Context, files []FileRecord, sink DownloadSink) {
	for i, f := range files {
		if err := g.downloadOne(ctx, f, sink); err != nil {
			g.notifyFailure("Failed to download %q", f.Name)
			g.logger.Warn("download failed", "file", f.Name, "error", err)
		}
		if i < len(files)-1 {
			sleep(ctx, g.downloadDelay)
		}
	}
	g.notifySuccess("%d file(s) downloaded", len(files))
}

func (g *Gallery) downloadOne(ctx context.Context, f FileRecord, sink DownloadSink) error {
	data, err := g.blobs.FetchBytes(ctx, f.ID)
	if err != nil {
		return fmt.Errorf("fetching content: %w", err)
	}
	if err := sink.Save(f.Name, data); err != nil {
		return fmt.Errorf("saving locally: %w", err)
	}
	return nil
}

// ShareLinks resolves a direct URL per file — falling back to the raw id
// when resolution fails — and writes all links to the clipboard as one
// newline-joined operation. The clipboard write is the single failure
// point; on failure nothing is partially copied.
func (g *Gallery) ShareLinks(ctx context.Context, files []FileRecord) {
	links := make([]string, len(files))
	for i, f := range files {
		url, err := g.blobs.DirectURL(ctx, f.ID)
		if err != nil {
			url = f.ID
		}
		links[i] = url
	}

	if err := g.clipboard.Write(strings.Join(links, "\n")); err != nil {
		g.notifyFailure("Failed to copy links")
		g.logger.Warn("clipboard write failed", "error", err)
		return
	}
	g.notifySuccess("%d link(s) copied to clipboard", len(files))
}

// CopyNames writes the selected file names to the clipboard, newline
// joined, as one operation.
func (g *Gallery) CopyNames(files []FileRecord) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}

	if err := g.clipboard.Write(strings.Join(names, "\n")); err != nil {
		g.notifyFailure("Failed to copy")
		g.logger.Warn("clipboard write failed", "error", err)
		return
	}
	g.notifySuccess("%d file name(s) copied", len(files))
}

// DeleteAll removes each file's registry reference sequentially, awaiting
// each before starting the next so a mid-batch failure never races later
// removes. Any failure yields one aggregate failure notice even though
// earlier deletes may have succeeded; which items actually went through is
// not reported — the refreshed listing is the authority. On completion,
// success or not, the selection is cleared, the caller's cache entries are
// invalidated, and the authoritative listing is re-fetched.
func (g *Gallery) DeleteAll(ctx context.Context, caller string, sel *Selection, files []FileRecord) {
	var failed bool
	for _, f := range files {
		if err := g.registry.RemoveFileReference(ctx, caller, f.ID); err != nil {
			g.logger.Warn("delete failed", "file", f.Name, "error", err)
			failed = true
			break
		}
	}

	if failed {
		g.notifyFailure("Failed to delete some files")
	} else {
		g.notifySuccess("%d file(s) deleted", len(files))
	}

	sel.Clear()
	g.cache.Invalidate(caller)
	if _, err := g.ListFiles(ctx, caller); err != nil {
		g.logger.Warn("refresh after delete failed", "error", err)
	}
}
