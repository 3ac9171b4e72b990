package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// JSONFile exports the catalog as an indented JSON document.
type JSONFile struct {
	Path string
}

// Write replaces the file with the records.
func (j *JSONFile) Write(ctx context.Context, records []playlist.TrackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(newDocument(normalizeRecords(records)), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	data = append(data, '\n')

	return withLock(j.Path, func() error {
		if err := os.WriteFile(j.Path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	})
}

// Read loads the records back.
func (j *JSONFile) Read(ctx context.Context) ([]playlist.TrackRecord, error) {
	data, err := j.ReadRaw(ctx)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return normalizeRecords(doc.Tracks), nil
}

// ReadRaw returns the document bytes unparsed.
func (j *JSONFile) ReadRaw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := withReadLock(j.Path, func() error {
		var err error
		data, err = os.ReadFile(j.Path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return data, nil
}
