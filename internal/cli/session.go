// internal/cli/session.go
package bleuboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwiater/bleuboard/internal/appconfig"
	"github.com/mwiater/bleuboard/internal/store"
)

// openStore opens the record store described by the loaded configuration.
// The caller closes it.
func openStore(ctx context.Context) (*store.Store, error) {
	cfg := GetConfig()
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	bucket, err := store.NewBucket(cfg.ImageDirectory(), cfg.ImageURLBase())
	if err != nil {
		return nil, fmt.Errorf("open image bucket: %w", err)
	}
	s, err := store.Open(ctx, store.Options{
		Path:         cfg.DatabaseFilePath(),
		Bucket:       bucket,
		CaptionSlots: cfg.CaptionCount(),
		Debug:        cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return s, nil
}

// withStore runs fn against an open store and closes it afterwards.
func withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// writeJSON prints v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
