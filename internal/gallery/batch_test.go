package gallery_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"photovault/internal/gallery"
	"photovault/internal/testutil"
)

func TestGallery_DownloadAll(t *testing.T) {
	t.Run("saves every file through the sink", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 3)
		sink := testutil.NewMemorySink()

		f.gallery.DownloadAll(context.Background(), files, sink)

		if names := sink.Names(); len(names) != 3 {
			t.Errorf("saved %d files, want 3: %v", len(names), names)
		}
		messages := f.notifier.Messages()
		if len(messages) != 1 || messages[0] != "3 file(s) downloaded" {
			t.Errorf("notices = %v, want closing count", messages)
		}
	})

	t.Run("one bad item never aborts the batch", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 3)
		sink := testutil.NewMemorySink()
		sink.FailName(files[1].Name, errors.New("disk full"))

		f.gallery.DownloadAll(context.Background(), files, sink)

		names := sink.Names()
		if len(names) != 2 || names[0] != files[0].Name || names[1] != files[2].Name {
			t.Errorf("saved %v, want first and third", names)
		}

		notices := f.notifier.Notices()
		if len(notices) != 2 {
			t.Fatalf("got %d notices, want failure + closing: %v", len(notices), f.notifier.Messages())
		}
		if notices[0].Level != gallery.NoticeFailure || !strings.Contains(notices[0].Message, files[1].Name) {
			t.Errorf("first notice = %+v, want failure naming %q", notices[0], files[1].Name)
		}
		// The closing notice reports the attempted total, not successes.
		if notices[1].Message != "3 file(s) downloaded" {
			t.Errorf("closing notice = %q, want attempted total", notices[1].Message)
		}
	})

	t.Run("missing blob content is a per-item failure", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 1)
		f.blobs.FailFetch(gallery.ErrBlobUnavailable)
		sink := testutil.NewMemorySink()

		f.gallery.DownloadAll(context.Background(), files, sink)

		if len(sink.Names()) != 0 {
			t.Errorf("saved %v, want none", sink.Names())
		}
		messages := f.notifier.Messages()
		if len(messages) != 2 || !strings.Contains(messages[0], "Failed to download") {
			t.Errorf("notices = %v", messages)
		}
	})

	t.Run("empty batch still closes with a count", func(t *testing.T) {
		f := newFixture()
		sink := testutil.NewMemorySink()

		f.gallery.DownloadAll(context.Background(), nil, sink)

		messages := f.notifier.Messages()
		if len(messages) != 1 || messages[0] != "0 file(s) downloaded" {
			t.Errorf("notices = %v", messages)
		}
	})
}

func TestGallery_ShareLinks(t *testing.T) {
	t.Run("copies all links in one write", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 2)

		f.gallery.ShareLinks(context.Background(), files)

		writes := f.clipboard.Writes()
		if len(writes) != 1 {
			t.Fatalf("clipboard written %d times, want 1", len(writes))
		}
		links := strings.Split(writes[0], "\n")
		if len(links) != 2 || links[0] != "memory://file-1" || links[1] != "memory://file-2" {
			t.Errorf("links = %v", links)
		}

		messages := f.notifier.Messages()
		if len(messages) != 1 || messages[0] != "2 link(s) copied to clipboard" {
			t.Errorf("notices = %v", messages)
		}
	})

	t.Run("falls back to the id when resolution fails", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 2)
		f.blobs.FailDirectURL(gallery.ErrBlobUnavailable)

		f.gallery.ShareLinks(context.Background(), files)

		writes := f.clipboard.Writes()
		if len(writes) != 1 {
			t.Fatalf("clipboard written %d times, want 1", len(writes))
		}
		if writes[0] != "file-1\nfile-2" {
			t.Errorf("clipboard = %q, want raw ids", writes[0])
		}
	})

	t.Run("clipboard failure copies nothing", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 2)
		f.clipboard.Fail(gallery.ErrClipboardDenied)

		f.gallery.ShareLinks(context.Background(), files)

		if len(f.clipboard.Writes()) != 0 {
			t.Errorf("writes = %v, want none", f.clipboard.Writes())
		}
		notices := f.notifier.Notices()
		if len(notices) != 1 || notices[0].Level != gallery.NoticeFailure || notices[0].Message != "Failed to copy links" {
			t.Errorf("notices = %v", f.notifier.Messages())
		}
	})
}

func TestGallery_CopyNames(t *testing.T) {
	f := newFixture()
	files := f.seed(t, 2)

	f.gallery.CopyNames(files)

	writes := f.clipboard.Writes()
	if len(writes) != 1 || writes[0] != files[0].Name+"\n"+files[1].Name {
		t.Errorf("writes = %v", writes)
	}
	messages := f.notifier.Messages()
	if len(messages) != 1 || messages[0] != "2 file name(s) copied" {
		t.Errorf("notices = %v", messages)
	}
}

func TestGallery_DeleteAll(t *testing.T) {
	t.Run("removes everything and reports the count", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 3)
		sel := gallery.NewSelection()
		sel.SelectAll([]string{"file-1", "file-2", "file-3"})
		ctx := context.Background()

		f.gallery.DeleteAll(ctx, caller, sel, files)

		remaining, err := f.gallery.ListFiles(ctx, caller)
		if err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("%d files remain, want 0", len(remaining))
		}
		messages := f.notifier.Messages()
		if len(messages) != 1 || messages[0] != "3 file(s) deleted" {
			t.Errorf("notices = %v", messages)
		}
		if sel.Active() {
			t.Error("selection still active after delete")
		}
	})

	t.Run("mid-batch failure yields one aggregate notice", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 3)
		sel := gallery.NewSelection()
		sel.SelectAll([]string{"file-1", "file-2", "file-3"})
		ctx := context.Background()

		f.registry.FailRemove(func(id string) error {
			if id == "file-2" {
				return gallery.ErrRemoteUnavailable
			}
			return nil
		})

		f.gallery.DeleteAll(ctx, caller, sel, files)

		notices := f.notifier.Notices()
		if len(notices) != 1 || notices[0].Level != gallery.NoticeFailure {
			t.Fatalf("notices = %v, want one aggregate failure", f.notifier.Messages())
		}
		if notices[0].Message != "Failed to delete some files" {
			t.Errorf("message = %q", notices[0].Message)
		}

		// The selection is cleared even on failure.
		if sel.Active() {
			t.Error("selection still active after failed delete")
		}

		// The refreshed listing is the authority: the first file really
		// went away, the rest survived.
		remaining, err := f.gallery.ListFiles(ctx, caller)
		if err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}
		if len(remaining) != 2 || remaining[0].ID != "file-2" || remaining[1].ID != "file-3" {
			t.Errorf("remaining = %v, want [file-2 file-3]", ids(remaining))
		}
	})

	t.Run("re-fetches the listing after invalidation", func(t *testing.T) {
		f := newFixture()
		files := f.seed(t, 1)
		sel := gallery.NewSelection()
		sel.SelectAll([]string{"file-1"})
		ctx := context.Background()

		// Prime the cache.
		if _, err := f.gallery.ListFiles(ctx, caller); err != nil {
			t.Fatalf("ListFiles() error = %v", err)
		}
		before := f.registry.ListCalls()

		f.gallery.DeleteAll(ctx, caller, sel, files)

		if after := f.registry.ListCalls(); after != before+1 {
			t.Errorf("registry listed %d times during delete, want exactly 1 re-fetch", after-before)
		}
	})
}
