package gallery

// ListingCache is the process-wide cache of listings and quotas, keyed by
// caller. Every component reads listings through it; only the upload and
// batch orchestrators invalidate it, and always per caller — never a global
// flush of unrelated callers' entries.
type ListingCache interface {
	Files(caller string) ([]FileRecord, bool)
	SetFiles(caller string, files []FileRecord)
	QuotaBytes(caller string) (int64, bool)
	SetQuotaBytes(caller string, quota int64)

	// Invalidate drops the caller's cached listing and quota.
	Invalidate(caller string)
}
