package testutil

import (
	"context"
	"sync"
	"testing"

	"photovault/internal/gallery"
	"photovault/internal/registry"
)

// NewTestRegistry creates an in-memory SQLite registry with schema applied.
// The registry is automatically closed when the test completes.
func NewTestRegistry(t *testing.T) gallery.Registry {
	t.Helper()

	reg, err := registry.NewSQLiteRegistry(":memory:", FixedClock())
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	t.Cleanup(func() {
		reg.Close()
	})

	return reg
}

// FlakyRegistry wraps another Registry with injectable failures and call
// counting, for exercising orchestrator error paths.
type FlakyRegistry struct {
	Inner gallery.Registry

	mu        sync.Mutex
	listCalls int
	failList  error
	failSave  error
	// failRemove returns the error to inject for the given id, or nil.
	failRemove func(id string) error
}

func NewFlakyRegistry(inner gallery.Registry) *FlakyRegistry {
	return &FlakyRegistry{Inner: inner}
}

// FailList makes ListFiles return err until cleared with nil.
func (r *FlakyRegistry) FailList(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failList = err
}

// FailSave makes SaveFileReference return err until cleared with nil.
func (r *FlakyRegistry) FailSave(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSave = err
}

// FailRemove installs a per-id error selector for RemoveFileReference.
func (r *FlakyRegistry) FailRemove(fn func(id string) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failRemove = fn
}

// ListCalls reports how many times ListFiles was invoked.
func (r *FlakyRegistry) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

func (r *FlakyRegistry) ListFiles(ctx context.Context, caller string) ([]gallery.FileRecord, error) {
	r.mu.Lock()
	r.listCalls++
	err := r.failList
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.Inner.ListFiles(ctx, caller)
}

func (r *FlakyRegistry) SaveFileReference(ctx context.Context, caller string, ref gallery.FileReference) error {
	r.mu.Lock()
	err := r.failSave
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Inner.SaveFileReference(ctx, caller, ref)
}

func (r *FlakyRegistry) RemoveFileReference(ctx context.Context, caller string, id string) error {
	r.mu.Lock()
	fn := r.failRemove
	r.mu.Unlock()
	if fn != nil {
		if err := fn(id); err != nil {
			return err
		}
	}
	return r.Inner.RemoveFileReference(ctx, caller, id)
}

func (r *FlakyRegistry) GetUserProfile(ctx context.Context, caller string) (*gallery.UserProfile, error) {
	return r.Inner.GetUserProfile(ctx, caller)
}

func (r *FlakyRegistry) SaveUserProfile(ctx context.Context, caller string, profile gallery.UserProfile) error {
	return r.Inner.SaveUserProfile(ctx, caller, profile)
}

func (r *FlakyRegistry) Quota(ctx context.Context, caller string) (int64, error) {
	return r.Inner.Quota(ctx, caller)
}

var _ gallery.Registry = (*FlakyRegistry)(nil)
