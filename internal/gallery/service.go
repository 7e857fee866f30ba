package gallery

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Gallery is the orchestration layer that coordinates the registry, blob
// store, listing cache and user-facing notifications for one client.
type Gallery struct {
	registry  Registry
	blobs     BlobStore
	cache     ListingCache
	clipboard Clipboard
	notifier  Notifier
	logger    Logger
	clock     Clock
	idgen     IDGenerator

	// downloadDelay is the pause between items in a batch download,
	// bounding pressure on the receiving side.
	downloadDelay time.Duration

	mu     sync.Mutex
	upload *UploadState
}

// NewGallery creates a Gallery with the provided dependencies.
func NewGallery(registry Registry, blobs BlobStore, cache ListingCache, clipboard Clipboard, notifier Notifier, logger Logger, clock Clock, idgen IDGenerator, downloadDelay time.Duration) *Gallery {
	return &Gallery{
		registry:      registry,
		blobs:         blobs,
		cache:         cache,
		clipboard:     clipboard,
		notifier:      notifier,
		logger:        logger,
		clock:         clock,
		idgen:         idgen,
		downloadDelay: downloadDelay,
	}
}

// ListFiles returns the caller's file records, served from the cache when
// present. On a miss the registry listing is fetched and cached; the
// registry's response is the ground truth on each query.
func (g *Gallery) ListFiles(ctx context.Context, caller string) ([]FileRecord, error) {
	if files, ok := g.cache.Files(caller); ok {
		return files, nil
	}

	files, err := g.registry.ListFiles(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	g.cache.SetFiles(caller, files)
	return files, nil
}

// QuotaBytes returns the caller's storage quota, cached alongside the
// listing.
func (g *Gallery) QuotaBytes(ctx context.Context, caller string) (int64, error) {
	if quota, ok := g.cache.QuotaBytes(caller); ok {
		return quota, nil
	}

	quota, err := g.registry.Quota(ctx, caller)
	if err != nil {
		return 0, fmt.Errorf("fetching quota: %w", err)
	}
	g.cache.SetQuotaBytes(caller, quota)
	return quota, nil
}

// StorageUsage reports the caller's used bytes (sum of record sizes) and
// quota.
func (g *Gallery) StorageUsage(ctx context.Context, caller string) (used, quota int64, err error) {
	files, err := g.ListFiles(ctx, caller)
	if err != nil {
		return 0, 0, err
	}
	for _, f := range files {
		used += f.Size
	}
	quota, err = g.QuotaBytes(ctx, caller)
	if err != nil {
		return 0, 0, err
	}
	return used, quota, nil
}

// Groups buckets files by recency against the current clock. now is read
// per call, so boundary files may classify differently across calls.
func (g *Gallery) Groups(files []FileRecord) []DateGroup {
	return GroupByDate(files, g.clock.Now())
}

// Profile returns the caller's profile, or nil when none has been set.
func (g *Gallery) Profile(ctx context.Context, caller string) (*UserProfile, error) {
	profile, err := g.registry.GetUserProfile(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return profile, nil
}

// SaveProfile creates or replaces the caller's profile.
func (g *Gallery) SaveProfile(ctx context.Context, caller string, profile UserProfile) error {
	if err := g.registry.SaveUserProfile(ctx, caller, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

func (g *Gallery) notifySuccess(format string, args ...any) {
	g.notifier.Notify(Notice{Level: NoticeSuccess, Message: fmt.Sprintf(format, args...)})
}

func (g *Gallery) notifyFailure(format string, args ...any) {
	g.notifier.Notify(Notice{Level: NoticeFailure, Message: fmt.Sprintf(format, args...)})
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
