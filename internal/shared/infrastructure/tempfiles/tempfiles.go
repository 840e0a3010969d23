package tempfiles

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Prefix marks files owned by this package; the sweeper never touches others.
const Prefix = "upload-"

// Spool copies r into a new temp file under dir, keeping the extension of
// name so the asset store can infer the resource type. It returns the path.
func Spool(dir, name string, r io.Reader) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	f, err := os.CreateTemp(dir, Prefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to save temp file: %w", err)
	}
	return f.Name(), nil
}

// Sweeper periodically removes spooled files older than MaxAge.
type Sweeper struct {
	Dir      string
	MaxAge   time.Duration
	Interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a sweeper for dir.
func NewSweeper(dir string, maxAge, interval time.Duration) *Sweeper {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Sweeper{Dir: dir, MaxAge: maxAge, Interval: interval, now: time.Now}
}

// Sweep removes stale spooled files once and returns how many were removed.
// Errors on individual files are logged and skipped.
func (s *Sweeper) Sweep() int {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", s.Dir).Msg("temp sweep: read dir failed")
		return 0
	}

	cutoff := s.now().Add(-s.MaxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("temp sweep: remove failed")
			continue
		}
		removed++
	}
	return removed
}

// Run sweeps on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	if s.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Info().Int("removed", n).Str("dir", s.Dir).Msg("temp sweep completed")
			}
		}
	}
}
