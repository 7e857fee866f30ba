package gallery_test

import (
	"testing"

	"photovault/internal/gallery"
)

func threeFiles() []gallery.FileRecord {
	return []gallery.FileRecord{
		{ID: "1", Name: "a.png"},
		{ID: "2", Name: "b.png"},
		{ID: "3", Name: "c.png"},
	}
}

func TestLightbox_Open(t *testing.T) {
	t.Run("opens at the requested index", func(t *testing.T) {
		l := gallery.NewLightbox()
		l.Open(threeFiles(), 1)
		if !l.IsOpen() || l.Index() != 1 {
			t.Errorf("open=%v index=%d, want open at 1", l.IsOpen(), l.Index())
		}
	})

	t.Run("clamps an out-of-range index", func(t *testing.T) {
		l := gallery.NewLightbox()
		l.Open(threeFiles(), 99)
		if l.Index() != 2 {
			t.Errorf("index = %d, want 2", l.Index())
		}

		l.Close()
		l.Open(threeFiles(), -5)
		if l.Index() != 0 {
			t.Errorf("index = %d, want 0", l.Index())
		}
	})

	t.Run("ignores an empty sequence", func(t *testing.T) {
		l := gallery.NewLightbox()
		l.Open(nil, 0)
		if l.IsOpen() {
			t.Error("opening over no files should be a no-op")
		}
	})
}

func TestLightbox_Navigation(t *testing.T) {
	l := gallery.NewLightbox()
	l.Open(threeFiles(), 0)

	l.Next()
	if l.Index() != 1 {
		t.Errorf("after Next: index = %d, want 1", l.Index())
	}

	// Clamped at the end.
	l.Next()
	l.Next()
	if l.Index() != 2 {
		t.Errorf("Next past the end: index = %d, want 2", l.Index())
	}

	// Clamped at the start.
	l.Prev()
	l.Prev()
	l.Prev()
	if l.Index() != 0 {
		t.Errorf("Prev past the start: index = %d, want 0", l.Index())
	}
}

func TestLightbox_IndexAlwaysInRange(t *testing.T) {
	l := gallery.NewLightbox()
	l.Open(threeFiles(), 1)

	moves := []func(){l.Next, l.Prev, l.Prev, l.Prev, l.Next, l.Next, l.Next, l.Next, l.Prev}
	for i, move := range moves {
		move()
		if l.Index() < 0 || l.Index() >= l.Len() {
			t.Fatalf("move %d: index %d out of range [0,%d)", i, l.Index(), l.Len())
		}
	}
}

func TestLightbox_HandleKey(t *testing.T) {
	l := gallery.NewLightbox()
	l.Open(threeFiles(), 0)

	l.HandleKey(gallery.KeyRight)
	if l.Index() != 1 {
		t.Errorf("KeyRight: index = %d, want 1", l.Index())
	}

	l.HandleKey(gallery.KeyLeft)
	if l.Index() != 0 {
		t.Errorf("KeyLeft: index = %d, want 0", l.Index())
	}

	l.HandleKey(gallery.KeyNone)
	if l.Index() != 0 {
		t.Errorf("KeyNone: index = %d, want 0", l.Index())
	}

	l.HandleKey(gallery.KeyEscape)
	if l.IsOpen() {
		t.Error("KeyEscape should close the lightbox")
	}
}

func TestLightbox_KeysIgnoredWhileClosed(t *testing.T) {
	l := gallery.NewLightbox()

	for _, k := range []gallery.Key{gallery.KeyEscape, gallery.KeyLeft, gallery.KeyRight} {
		l.HandleKey(k)
	}
	if l.IsOpen() || l.Index() != 0 {
		t.Errorf("closed lightbox changed state: open=%v index=%d", l.IsOpen(), l.Index())
	}

	if _, ok := l.Current(); ok {
		t.Error("Current() on a closed lightbox should report not ok")
	}
}

func TestLightbox_CloseDropsSequence(t *testing.T) {
	l := gallery.NewLightbox()
	l.Open(threeFiles(), 2)
	l.Close()

	if l.Len() != 0 || l.Index() != 0 {
		t.Errorf("after Close: len=%d index=%d, want 0 0", l.Len(), l.Index())
	}

	// Reopening captures a fresh sequence.
	l.Open(threeFiles()[:1], 0)
	if l.Len() != 1 || l.Index() != 0 {
		t.Errorf("after reopen: len=%d index=%d, want 1 0", l.Len(), l.Index())
	}
}

func TestLightbox_Current(t *testing.T) {
	l := gallery.NewLightbox()
	l.Open(threeFiles(), 1)

	f, ok := l.Current()
	if !ok || f.ID != "2" {
		t.Errorf("Current() = %v %v, want file 2", f.ID, ok)
	}
}
