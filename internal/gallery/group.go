package gallery

import "time"

const dayMillis = 86_400_000

// DateGroup is one labeled bucket of files in display order.
type DateGroup struct {
	Label string
	Files []FileRecord
}

// GroupByDate partitions files into recency buckets. The input is scanned
// once; each file is appended to the bucket for its label, and buckets
// appear in the order their label was first encountered. Neither groups
// nor the files within a group are re-sorted: callers wanting
// chronological group order must pre-sort the input.
//
// now is taken fresh from the caller on every invocation rather than
// memoized, so two calls straddling a midnight-relative boundary may
// classify the same file differently. That nondeterminism is accepted.
func GroupByDate(files []FileRecord, now time.Time) []DateGroup {
	var groups []DateGroup
	index := make(map[string]int)

	for _, f := range files {
		label := classify(f.UploadedAt, now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DateGroup{Label: label})
		}
		groups[i].Files = append(groups[i].Files, f)
	}
	return groups
}

// classify assigns a recency label to an upload timestamp:
// same day "Today", one day back "Yesterday", under a week the upload
// day's weekday name, anything older "Month Year".
func classify(uploadedAtNanos int64, now time.Time) string {
	ms := uploadedAtNanos / 1_000_000
	diffDays := (now.UnixMilli() - ms) / dayMillis

	uploaded := time.UnixMilli(ms)
	switch {
	case diffDays == 0:
		return "Today"
	case diffDays == 1:
		return "Yesterday"
	case diffDays < 7:
		return uploaded.Weekday().String()
	default:
		return uploaded.Month().String() + " " + uploaded.Format("2006")
	}
}
