package app

import (
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/term"

	"photovault/internal/gallery"
)

// OSC52Clipboard writes to the host clipboard through the terminal's
// OSC 52 escape sequence. Writes are rejected when the output is not a
// terminal: a clipboard the host won't accept surfaces as
// ErrClipboardDenied rather than silently vanishing into a pipe.
type OSC52Clipboard struct {
	out *os.File
}

func NewOSC52Clipboard(out *os.File) *OSC52Clipboard {
	return &OSC52Clipboard{out: out}
}

func (c *OSC52Clipboard) Write(text string) error {
	if !term.IsTerminal(int(c.out.Fd())) {
		return fmt.Errorf("%w: output is not a terminal", gallery.ErrClipboardDenied)
	}
	payload := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(c.out, "\x1b]52;c;%s\x07", payload); err != nil {
		return fmt.Errorf("%w: writing escape sequence: %v", gallery.ErrClipboardDenied, err)
	}
	return nil
}

var _ gallery.Clipboard = (*OSC52Clipboard)(nil)
