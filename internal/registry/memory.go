package registry

import (
	"context"
	"fmt"
	"sync"

	"photovault/internal/gallery"
)

// MemoryRegistry is an in-memory implementation of the Registry interface,
// useful for testing and throwaway setups. Safe for concurrent use.
// Records keep insertion order per caller, which is upload order.
type MemoryRegistry struct {
	clock gallery.Clock

	mu       sync.RWMutex
	files    map[string][]gallery.FileRecord
	profiles map[string]gallery.UserProfile
	quotas   map[string]int64
}

// NewMemoryRegistry creates an empty in-memory registry stamping records
// with the given clock.
func NewMemoryRegistry(clock gallery.Clock) *MemoryRegistry {
	return &MemoryRegistry{
		clock:    clock,
		files:    make(map[string][]gallery.FileRecord),
		profiles: make(map[string]gallery.UserProfile),
		quotas:   make(map[string]int64),
	}
}

// ListFiles returns a copy of the caller's records in upload order.
func (r *MemoryRegistry) ListFiles(_ context.Context, caller string) ([]gallery.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.files[caller]
	out := make([]gallery.FileRecord, len(records))
	copy(out, records)
	return out, nil
}

// SaveFileReference appends a record for the reference, stamped with the
// registry clock. A duplicate id is rejected: ids are assigned once.
func (r *MemoryRegistry) SaveFileReference(_ context.Context, caller string, ref gallery.FileReference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.files[caller] {
		if f.ID == ref.ID {
			return fmt.Errorf("%w: duplicate file id %q", gallery.ErrRejected, ref.ID)
		}
	}
	r.files[caller] = append(r.files[caller], gallery.FileRecord{
		ID:         ref.ID,
		Name:       ref.Name,
		Size:       ref.Size,
		MimeType:   ref.MimeType,
		UploadedAt: r.clock.Now().UnixNano(),
	})
	return nil
}

// RemoveFileReference deletes the record with the given id. A missing id
// is a surfaced failure, not a silent no-op.
func (r *MemoryRegistry) RemoveFileReference(_ context.Context, caller string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.files[caller]
	for i, f := range records {
		if f.ID == id {
			r.files[caller] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: no file reference %q", gallery.ErrRejected, id)
}

// GetUserProfile returns the caller's profile, or nil if none is set.
func (r *MemoryRegistry) GetUserProfile(_ context.Context, caller string) (*gallery.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[caller]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SaveUserProfile creates or replaces the caller's profile.
func (r *MemoryRegistry) SaveUserProfile(_ context.Context, caller string, profile gallery.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[caller] = profile
	return nil
}

// Quota returns the caller's quota, falling back to the default.
func (r *MemoryRegistry) Quota(_ context.Context, caller string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if q, ok := r.quotas[caller]; ok {
		return q, nil
	}
	return gallery.DefaultQuotaBytes, nil
}

// SetQuota assigns an explicit quota for a caller.
func (r *MemoryRegistry) SetQuota(caller string, quota int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotas[caller] = quota
}

var _ gallery.Registry = (*MemoryRegistry)(nil)
