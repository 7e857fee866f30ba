package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photovault/internal/gallery"
)

func TestListingCache_FilesRoundTrip(t *testing.T) {
	c := NewListingCache(8, time.Minute)

	_, ok := c.Files("alice")
	assert.False(t, ok, "expected miss on empty cache")

	files := []gallery.FileRecord{
		{ID: "1", Name: "a.png", Size: 10, MimeType: "image/png"},
		{ID: "2", Name: "b.mp4", Size: 20, MimeType: "video/mp4"},
	}
	c.SetFiles("alice", files)

	got, ok := c.Files("alice")
	require.True(t, ok)
	assert.Equal(t, files, got)
}

func TestListingCache_CopiesOnReadAndWrite(t *testing.T) {
	c := NewListingCache(8, time.Minute)

	files := []gallery.FileRecord{{ID: "1", Name: "a.png"}}
	c.SetFiles("alice", files)

	// Mutating the slice we stored must not affect the cache
	files[0].Name = "mutated"
	got, ok := c.Files("alice")
	require.True(t, ok)
	assert.Equal(t, "a.png", got[0].Name)

	// Mutating what we read back must not affect later reads
	got[0].Name = "mutated-again"
	got2, ok := c.Files("alice")
	require.True(t, ok)
	assert.Equal(t, "a.png", got2[0].Name)
}

func TestListingCache_QuotaRoundTrip(t *testing.T) {
	c := NewListingCache(8, time.Minute)

	_, ok := c.QuotaBytes("alice")
	assert.False(t, ok)

	c.SetQuotaBytes("alice", 1024)
	quota, ok := c.QuotaBytes("alice")
	require.True(t, ok)
	assert.Equal(t, int64(1024), quota)
}

func TestListingCache_InvalidateIsCallerScoped(t *testing.T) {
	c := NewListingCache(8, time.Minute)

	c.SetFiles("alice", []gallery.FileRecord{{ID: "1", Name: "a.png"}})
	c.SetQuotaBytes("alice", 100)
	c.SetFiles("bob", []gallery.FileRecord{{ID: "2", Name: "b.png"}})
	c.SetQuotaBytes("bob", 200)

	c.Invalidate("alice")

	_, ok := c.Files("alice")
	assert.False(t, ok, "alice's listing should be dropped")
	_, ok = c.QuotaBytes("alice")
	assert.False(t, ok, "alice's quota should be dropped")

	got, ok := c.Files("bob")
	require.True(t, ok, "bob's listing should survive")
	assert.Equal(t, "2", got[0].ID)
	quota, ok := c.QuotaBytes("bob")
	require.True(t, ok, "bob's quota should survive")
	assert.Equal(t, int64(200), quota)
}

func TestListingCache_TTLExpiry(t *testing.T) {
	c := NewListingCache(8, 10*time.Millisecond)

	c.SetFiles("alice", []gallery.FileRecord{{ID: "1"}})
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Files("alice")
	assert.False(t, ok, "entry should expire after the TTL")
}
