package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photovault/internal/gallery"
)

// DirSink saves downloaded files into a local directory. Existing files
// are never overwritten; a numeric suffix is inserted before the
// extension instead.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) Save(name string, data []byte) error {
	path, err := s.uniquePath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// uniquePath returns dir/name, or dir/name (N).ext when name is taken.
func (s *DirSink) uniquePath(name string) (string, error) {
	base := filepath.Base(name)
	path := filepath.Join(s.dir, base)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; i < 1000; i++ {
		candidate := filepath.Join(s.dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", base, s.dir)
}

var _ gallery.DownloadSink = (*DirSink)(nil)
