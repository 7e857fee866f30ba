package gallery_test

import (
	"testing"
	"time"

	"photovault/internal/gallery"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 500, "500 B"},
		{"just below a kilobyte", 1023, "1023 B"},
		{"one kilobyte", 1024, "1.0 KB"},
		{"kilobytes", 1536, "1.5 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"fractional megabytes", 1572864, "1.5 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"terabytes", 2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gallery.FormatBytes(tt.n); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	// 2024-01-15 10:30 local; construct from a local time to keep the
	// expectation independent of the test machine's zone.
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	got := gallery.FormatTimestamp(ts.UnixNano())
	want := "Jan 15, 2024 10:30 AM"
	if got != want {
		t.Errorf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestFormatTimestamp_truncatesSubMillisecond(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	withRemainder := ts.UnixNano() + 999_999 // just under one ms
	if got, want := gallery.FormatTimestamp(withRemainder), gallery.FormatTimestamp(ts.UnixNano()); got != want {
		t.Errorf("FormatTimestamp() with sub-ms remainder = %q, want %q", got, want)
	}
}

func TestIsMedia(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"video/mp4", true},
		{"application/pdf", false},
		{"audio/mpeg", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := gallery.IsMedia(tt.mimeType); got != tt.want {
			t.Errorf("IsMedia(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		mimeType string
		want     gallery.FileKind
	}{
		{"image/png", gallery.KindImage},
		{"video/mp4", gallery.KindVideo},
		{"audio/mpeg", gallery.KindAudio},
		{"application/zip", gallery.KindArchive},
		{"application/x-tar", gallery.KindArchive},
		{"application/pdf", gallery.KindDocument},
		{"text/plain", gallery.KindDocument},
		{"application/octet-stream", gallery.KindOther},
		{"", gallery.KindOther},
	}

	for _, tt := range tests {
		if got := gallery.KindOf(tt.mimeType); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.mimeType, got, tt.want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"", "FILE"},
		{"application/pdf", "PDF"},
		{"application/zip", "ZIP"},
		{"image/png", "PNG"},
		{"video/mp4", "MP4"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "DOCX"},
		{"image/svg+xml", "SVG+XM"},
	}

	for _, tt := range tests {
		if got := gallery.TypeLabel(tt.mimeType); got != tt.want {
			t.Errorf("TypeLabel(%q) = %q, want %q", tt.mimeType, got, tt.want)
		}
	}
}
