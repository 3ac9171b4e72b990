package export

import (
	"context"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// LoadCatalog reads an export and rebuilds the catalog it was written from.
func LoadCatalog(ctx context.Context, path string) (*playlist.Catalog, error) {
	records, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	c := playlist.NewCatalog()
	for _, r := range records {
		if len(r.Shows) == 0 {
			c.Add(r.Title, r.Artist, "")
			continue
		}
		for _, d := range r.Shows {
			c.Add(r.Title, r.Artist, d)
		}
	}
	return c, nil
}
