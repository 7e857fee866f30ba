package testutil

import (
	"sync"

	"photovault/internal/gallery"
)

// RecordingNotifier captures notices in order for assertions.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []gallery.Notice
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Notify(notice gallery.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Notices returns a copy of all captured notices in arrival order.
func (n *RecordingNotifier) Notices() []gallery.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]gallery.Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

// Messages returns just the notice texts, in arrival order.
func (n *RecordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.notices))
	for i, notice := range n.notices {
		out[i] = notice.Message
	}
	return out
}

// RecordingClipboard captures clipboard writes and optionally fails them.
type RecordingClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func NewRecordingClipboard() *RecordingClipboard {
	return &RecordingClipboard{}
}

// Fail makes subsequent writes return err until cleared with nil.
func (c *RecordingClipboard) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *RecordingClipboard) Write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

// Writes returns a copy of all successful writes in order.
func (c *RecordingClipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	copy(out, c.writes)
	return out
}

// MemorySink collects downloaded files in memory. A name listed in
// FailNames rejects the save.
type MemorySink struct {
	mu        sync.Mutex
	saved     map[string][]byte
	order     []string
	failNames map[string]error
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		saved:     make(map[string][]byte),
		failNames: make(map[string]error),
	}
}

// FailName makes Save reject the given file name with err.
func (s *MemorySink) FailName(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNames[name] = err
}

func (s *MemorySink) Save(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failNames[name]; ok {
		return err
	}
	s.saved[name] = append([]byte(nil), data...)
	s.order = append(s.order, name)
	return nil
}

// Saved returns the content stored under name, or nil.
func (s *MemorySink) Saved(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[name]
}

// Names returns the saved file names in save order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

var (
	_ gallery.Notifier     = (*RecordingNotifier)(nil)
	_ gallery.Clipboard    = (*RecordingClipboard)(nil)
	_ gallery.DownloadSink = (*MemorySink)(nil)
)
