package gallery

import "sync"

// Key is a navigation key the lightbox understands.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyLeft
	KeyRight
)

// Lightbox is the single-item viewer state: a sequence captured at open
// time plus the current index. While open the index stays within
// [0, len-1]; next/prev clamp at the edges rather than wrapping. Closing
// discards the captured sequence — reopening captures a fresh one, which
// may differ if the source list changed meanwhile.
type Lightbox struct {
	mu    sync.Mutex
	files []FileRecord
	index int
	open  bool
}

// NewLightbox returns a closed lightbox.
func NewLightbox() *Lightbox {
	return &Lightbox{}
}

// Open captures files and opens at the requested index, clamped into
// range. Opening over an empty sequence is a no-op.
func (l *Lightbox) Open(files []FileRecord, requested int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(files) == 0 {
		return
	}
	l.files = files
	l.index = clamp(requested, 0, len(files)-1)
	l.open = true
}

// Close closes the viewer and drops the captured sequence.
func (l *Lightbox) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files = nil
	l.index = 0
	l.open = false
}

// IsOpen reports whether the viewer is open.
func (l *Lightbox) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Next advances one item, clamped at the end. No-op when closed.
func (l *Lightbox) Next() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		l.index = clamp(l.index+1, 0, len(l.files)-1)
	}
}

// Prev steps back one item, clamped at the start. No-op when closed.
func (l *Lightbox) Prev() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open {
		l.index = clamp(l.index-1, 0, len(l.files)-1)
	}
}

// HandleKey routes a key press: Escape closes, arrows navigate. Keys are
// ignored while closed.
func (l *Lightbox) HandleKey(k Key) {
	if !l.IsOpen() {
		return
	}
	switch k {
	case KeyEscape:
		l.Close()
	case KeyRight:
		l.Next()
	case KeyLeft:
		l.Prev()
	}
}

// Current returns the file under the cursor, or false when closed.
func (l *Lightbox) Current() (FileRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open {
		return FileRecord{}, false
	}
	return l.files[l.index], true
}

// Index returns the current position (zero when closed).
func (l *Lightbox) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

// Len returns the captured sequence length (zero when closed).
func (l *Lightbox) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
