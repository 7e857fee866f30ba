package app

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"photovault/internal/blob"
	"photovault/internal/cache"
	"photovault/internal/config"
	"photovault/internal/encryption"
	"photovault/internal/gallery"
	"photovault/internal/registry"
)

// PassphraseFunc obtains the key passphrase from the user, typically by
// prompting on the terminal.
type PassphraseFunc func(prompt string) (string, error)

// GalleryApp is the application layer between the CLI and the Gallery
// service. It constructs all dependencies from config, exposes high-level
// operations that accept raw strings, and manages resource lifecycle on
// Close.
type GalleryApp struct {
	cfg       *config.Config
	registry  gallery.Registry
	store     gallery.BlobStore
	cache     *cache.ListingCache
	encryptor encryption.Encryptor
	gallery   *gallery.Gallery
	selection *gallery.Selection
	logFile   *os.File
}

// NewGalleryApp creates a fully wired GalleryApp from the given config.
// operation identifies the CLI command being run (e.g. "Upload", "Ls").
// prompt is consulted lazily, on the first decryption, when blob
// encryption is enabled. The caller must call Close when done.
func NewGalleryApp(ctx context.Context, cfg *config.Config, operation string, prompt PassphraseFunc) (*GalleryApp, error) {
	if cfg.CallerID == "" {
		return nil, fmt.Errorf("caller_id not configured: run 'pv config init' first")
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	clock := gallery.RealClock{}

	reg, err := registry.NewRegistryFromConfig(cfg.Registry, clock)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	store, err := blob.NewStoreFromConfig(ctx, cfg.Blob)
	if err != nil {
		closeRegistry(reg)
		logFile.Close()
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		closeRegistry(reg)
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	if cfg.Blob.Encrypt {
		if !enc.IsConfigured() {
			closeRegistry(reg)
			logFile.Close()
			return nil, fmt.Errorf("blob encryption enabled but keys missing: run 'pv keys init' first")
		}
		store = blob.NewEncryptedStore(store, enc, func() (encryption.DecryptionContext, error) {
			passphrase, err := prompt("Enter key passphrase: ")
			if err != nil {
				return nil, err
			}
			return enc.Unlock(passphrase)
		})
	}

	listings := cache.NewListingCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	g := gallery.NewGallery(
		reg,
		store,
		listings,
		NewOSC52Clipboard(os.Stdout),
		NewConsoleNotifier(os.Stdout),
		&slogAdapter{l: logger},
		clock,
		gallery.UUIDGenerator{},
		time.Duration(cfg.Batch.DownloadDelayMillis)*time.Millisecond,
	)

	logger.Info("starting", "operation", operation, "caller", cfg.CallerID)

	return &GalleryApp{
		cfg:       cfg,
		registry:  reg,
		store:     store,
		cache:     listings,
		encryptor: enc,
		gallery:   g,
		selection: gallery.NewSelection(),
		logFile:   logFile,
	}, nil
}

// Caller returns the configured caller identity.
func (a *GalleryApp) Caller() string { return a.cfg.CallerID }

// Gallery exposes the underlying service for interactive commands.
func (a *GalleryApp) Gallery() *gallery.Gallery { return a.gallery }

// Selection exposes the app-level selection shared across an interactive
// session.
func (a *GalleryApp) Selection() *gallery.Selection { return a.selection }

// Encryptor exposes the configured encryptor for key management commands.
func (a *GalleryApp) Encryptor() encryption.Encryptor { return a.encryptor }

// Listing is a section view over the caller's files: the visible records,
// their date groups, and why the view is empty when it is.
type Listing struct {
	Section   gallery.Section
	Total     int
	Displayed []gallery.FileRecord
	Groups    []gallery.DateGroup
	Empty     gallery.EmptyReason
}

// ListSection fetches the caller's files and applies section and search
// filtering.
func (a *GalleryApp) ListSection(ctx context.Context, rawSection, query string) (*Listing, error) {
	section := gallery.ParseSection(rawSection)

	all, err := a.gallery.ListFiles(ctx, a.cfg.CallerID)
	if err != nil {
		return nil, err
	}

	displayed := gallery.DisplayFiles(all, section, query)
	return &Listing{
		Section:   section,
		Total:     len(all),
		Displayed: displayed,
		Groups:    a.gallery.Groups(displayed),
		Empty:     gallery.Emptiness(len(all), len(displayed), query),
	}, nil
}

// UploadPath uploads the file at rawPath. The MIME type is inferred from
// the extension.
func (a *GalleryApp) UploadPath(ctx context.Context, rawPath string, onProgress func(gallery.UploadState)) error {
	f, err := os.Open(rawPath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	file := gallery.LocalFile{
		Name:     filepath.Base(rawPath),
		MimeType: mime.TypeByExtension(filepath.Ext(rawPath)),
		Content:  f,
	}
	return a.gallery.Upload(ctx, a.cfg.CallerID, file, onProgress)
}

// Download fetches the given files (all files when ids is empty) into the
// configured download directory.
func (a *GalleryApp) Download(ctx context.Context, ids []string) error {
	files, err := a.resolveFiles(ctx, ids)
	if err != nil {
		return err
	}

	sink, err := NewDirSink(a.cfg.DownloadDir)
	if err != nil {
		return err
	}

	a.gallery.DownloadAll(ctx, files, sink)
	return nil
}

// Share copies direct links for the given files to the clipboard.
func (a *GalleryApp) Share(ctx context.Context, ids []string) error {
	files, err := a.resolveFiles(ctx, ids)
	if err != nil {
		return err
	}
	a.gallery.ShareLinks(ctx, files)
	return nil
}

// CopyNames copies the given files' names to the clipboard.
func (a *GalleryApp) CopyNames(ctx context.Context, ids []string) error {
	files, err := a.resolveFiles(ctx, ids)
	if err != nil {
		return err
	}
	a.gallery.CopyNames(files)
	return nil
}

// Delete removes the given files' registry references.
func (a *GalleryApp) Delete(ctx context.Context, ids []string) error {
	files, err := a.resolveFiles(ctx, ids)
	if err != nil {
		return err
	}

	for _, f := range files {
		a.selection.Toggle(f.ID)
	}
	a.gallery.DeleteAll(ctx, a.cfg.CallerID, a.selection, files)
	return nil
}

// Usage reports used bytes against the caller's quota.
func (a *GalleryApp) Usage(ctx context.Context) (used, quota int64, err error) {
	return a.gallery.StorageUsage(ctx, a.cfg.CallerID)
}

// Profile returns the caller's profile, or nil when none is set.
func (a *GalleryApp) Profile(ctx context.Context) (*gallery.UserProfile, error) {
	return a.gallery.Profile(ctx, a.cfg.CallerID)
}

// SaveProfile creates or replaces the caller's profile.
func (a *GalleryApp) SaveProfile(ctx context.Context, name string) error {
	return a.gallery.SaveProfile(ctx, a.cfg.CallerID, gallery.UserProfile{Name: name})
}

// resolveFiles maps ids onto the caller's records, preserving listing
// order. Empty ids selects everything; an unknown id is an error.
func (a *GalleryApp) resolveFiles(ctx context.Context, ids []string) ([]gallery.FileRecord, error) {
	all, err := a.gallery.ListFiles(ctx, a.cfg.CallerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var files []gallery.FileRecord
	for _, f := range all {
		if wanted[f.ID] {
			files = append(files, f)
			delete(wanted, f.ID)
		}
	}
	for id := range wanted {
		return nil, fmt.Errorf("no file with id %q", id)
	}
	return files, nil
}

// Close releases the registry connection and the log file.
func (a *GalleryApp) Close() error {
	var firstErr error

	if err := closeRegistry(a.registry); err != nil {
		firstErr = fmt.Errorf("closing registry: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}

func closeRegistry(reg gallery.Registry) error {
	if c, ok := reg.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
