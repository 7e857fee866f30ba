package gallery

import (
	"fmt"
	"strings"
	"time"
)

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
	tib = 1 << 40
)

// FormatBytes renders a byte count for display: whole bytes below 1 KB,
// one decimal for KB/MB, two for GB/TB.
func FormatBytes(n int64) string {
	switch {
	case n == 0:
		return "0 B"
	case n < kib:
		return fmt.Sprintf("%d B", n)
	case n < mib:
		return fmt.Sprintf("%.1f KB", float64(n)/kib)
	case n < gib:
		return fmt.Sprintf("%.1f MB", float64(n)/mib)
	case n < tib:
		return fmt.Sprintf("%.2f GB", float64(n)/gib)
	default:
		return fmt.Sprintf("%.2f TB", float64(n)/tib)
	}
}

// FormatTimestamp renders a nanosecond epoch timestamp as a short local
// date-time, e.g. "Jan 15, 2024 10:30 AM".
func FormatTimestamp(nanos int64) string {
	t := time.UnixMilli(nanos / 1_000_000)
	return t.Format("Jan 2, 2006 03:04 PM")
}

// FileKind is a coarse display category derived from a MIME type.
type FileKind int

const (
	KindOther FileKind = iota
	KindImage
	KindVideo
	KindAudio
	KindArchive
	KindDocument
)

// IsMedia reports whether a MIME type belongs in the gallery section.
func IsMedia(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "video/")
}

// KindOf classifies a MIME type into a FileKind. Unknown and empty types
// are KindOther.
func KindOf(mimeType string) FileKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	case strings.Contains(mimeType, "zip"), strings.Contains(mimeType, "rar"),
		strings.Contains(mimeType, "tar"), strings.Contains(mimeType, "gzip"):
		return KindArchive
	case mimeType == "application/pdf", strings.HasPrefix(mimeType, "text/"),
		strings.Contains(mimeType, "word"), strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "spreadsheet"), strings.Contains(mimeType, "presentation"):
		return KindDocument
	default:
		return KindOther
	}
}

// TypeLabel returns a short uppercase label for a MIME type ("PNG", "PDF",
// "ZIP"). Falls back to the truncated subtype, or "FILE" for an empty type.
func TypeLabel(mimeType string) string {
	switch {
	case mimeType == "":
		return "FILE"
	case mimeType == "application/pdf":
		return "PDF"
	case strings.Contains(mimeType, "zip"):
		return "ZIP"
	case strings.Contains(mimeType, "word"):
		return "DOCX"
	case strings.Contains(mimeType, "excel"), strings.Contains(mimeType, "spreadsheet"):
		return "XLSX"
	}
	sub := mimeType
	if i := strings.LastIndex(mimeType, "/"); i >= 0 {
		sub = mimeType[i+1:]
	}
	sub = strings.ToUpper(sub)
	if len(sub) > 6 {
		sub = sub[:6]
	}
	return sub
}
