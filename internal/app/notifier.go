package app

import (
	"fmt"
	"io"

	"photovault/internal/gallery"
)

// ConsoleNotifier renders notices to a terminal, one line each.
type ConsoleNotifier struct {
	w io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(notice gallery.Notice) {
	mark := "✓"
	if notice.Level == gallery.NoticeFailure {
		mark = "✗"
	}
	fmt.Fprintf(n.w, "%s %s\n", mark, notice.Message)
}

var _ gallery.Notifier = (*ConsoleNotifier)(nil)
