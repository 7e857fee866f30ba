package gallery

import "strings"

// Section selects which records are visible in the grid.
type Section string

const (
	SectionGallery Section = "gallery"
	SectionAlbums  Section = "albums"
	SectionLibrary Section = "library"
)

// ParseSection maps a raw string onto a Section. Unknown values fall back
// to the gallery section.
func ParseSection(s string) Section {
	switch Section(s) {
	case SectionAlbums:
		return SectionAlbums
	case SectionLibrary:
		return SectionLibrary
	default:
		return SectionGallery
	}
}

// DisplayFiles returns the ordered subsequence of files visible for the
// given section and search query. The query is a case-insensitive substring
// match against the file name; an empty query matches everything. The
// gallery section additionally keeps only image and video MIME types.
// Albums currently behaves like library: search filtering only, reserved
// for future grouping.
func DisplayFiles(files []FileRecord, section Section, query string) []FileRecord {
	q := strings.ToLower(query)
	out := make([]FileRecord, 0, len(files))
	for _, f := range files {
		if q != "" && !strings.Contains(strings.ToLower(f.Name), q) {
			continue
		}
		if section == SectionGallery && !IsMedia(f.MimeType) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// EmptyReason distinguishes why a displayed list is empty, so the caller
// can render "no results for query" separately from "no files at all".
type EmptyReason int

const (
	// NotEmpty means there is something to display.
	NotEmpty EmptyReason = iota
	// EmptyNoFiles means the source list itself has nothing to show.
	EmptyNoFiles
	// EmptyNoMatches means files exist but the active query excluded them all.
	EmptyNoMatches
)

// Emptiness classifies an empty display result. total is the size of the
// unfiltered source list, displayed the size of the filtered one.
func Emptiness(total, displayed int, query string) EmptyReason {
	if displayed > 0 {
		return NotEmpty
	}
	if query != "" && total > 0 {
		return EmptyNoMatches
	}
	return EmptyNoFiles
}
