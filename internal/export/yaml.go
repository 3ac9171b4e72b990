package export

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// YAMLFile exports the catalog as a YAML document.
type YAMLFile struct {
	Path string
}

// Write replaces the file with the records.
func (y *YAMLFile) Write(ctx context.Context, records []playlist.TrackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(normalizeRecords(records))); err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	return withLock(y.Path, func() error {
		if err := os.WriteFile(y.Path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	})
}

// Read loads the records back.
func (y *YAMLFile) Read(ctx context.Context) ([]playlist.TrackRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := withReadLock(y.Path, func() error {
		var err error
		data, err = os.ReadFile(y.Path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return normalizeRecords(doc.Tracks), nil
}
