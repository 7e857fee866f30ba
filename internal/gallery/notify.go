package gallery

// NoticeLevel distinguishes success from failure notices.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeFailure
)

// Notice is a short human-readable message surfaced to the user. Every
// collaborator failure an orchestrator absorbs produces one; nothing fails
// silently.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives user-facing notices from the orchestrators.
type Notifier interface {
	Notify(n Notice)
}

// NopNotifier discards all notices. Use in tests that don't assert on them.
type NopNotifier struct{}

func (NopNotifier) Notify(Notice) {}

// Clipboard abstracts the host clipboard. Write replaces the clipboard
// content in one operation; on failure nothing is partially copied.
type Clipboard interface {
	Write(text string) error
}
