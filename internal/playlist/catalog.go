package playlist

import (
	"sort"
)

// record is the mutable form of a TrackRecord held inside a Catalog.
type record struct {
	title  string
	artist string
	shows  map[string]struct{}
	first  string
}

func (r *record) addShow(airDate string) {
	if airDate == "" {
		return
	}
	r.shows[airDate] = struct{}{}
	if r.first == "" || airDate < r.first {
		r.first = airDate
	}
}

func (r *record) snapshot() TrackRecord {
	shows := make([]string, 0, len(r.shows))
	for d := range r.shows {
		shows = append(shows, d)
	}
	sort.Strings(shows)
	return TrackRecord{
		Title:  r.title,
		Artist: r.artist,
		Shows:  shows,
		First:  r.first,
	}
}

// Catalog maps normalized title key to normalized artist key to the
// deduplicated track. Display text is fixed by the first insertion for a key
// pair; air dates only accumulate.
//
// A Catalog is owned by a single scan or build and is not safe for
// concurrent use.
type Catalog struct {
	records map[string]map[string]*record
	size    int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[string]map[string]*record)}
}

// Add folds one play of (title, artist) into the catalog. An empty airDate
// still creates the record but contributes no show.
func (c *Catalog) Add(title, artist, airDate string) {
	c.lookupOrCreate(title, artist).addShow(airDate)
}

func (c *Catalog) lookupOrCreate(title, artist string) *record {
	keyTitle, keyArtist := NormalizeKey(title, artist)

	byArtist, ok := c.records[keyTitle]
	if !ok {
		byArtist = make(map[string]*record)
		c.records[keyTitle] = byArtist
	}

	r, ok := byArtist[keyArtist]
	if !ok {
		r = &record{
			title:  title,
			artist: artist,
			shows:  make(map[string]struct{}),
		}
		byArtist[keyArtist] = r
		c.size++
	}
	return r
}

// Merge folds another catalog into c. Records already present in c keep
// their display text; show dates are unioned and First recomputed.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, keyTitle := range sortedKeys(other.records) {
		byArtist := other.records[keyTitle]
		for _, keyArtist := range sortedKeys(byArtist) {
			src := byArtist[keyArtist]
			dst := c.lookupOrCreate(src.title, src.artist)
			for d := range src.shows {
				dst.addShow(d)
			}
		}
	}
}

// Lookup returns the record for a display (title, artist) pair by its
// normalized key.
func (c *Catalog) Lookup(title, artist string) (TrackRecord, bool) {
	keyTitle, keyArtist := NormalizeKey(title, artist)
	r, ok := c.records[keyTitle][keyArtist]
	if !ok {
		return TrackRecord{}, false
	}
	return r.snapshot(), true
}

// ArtistsFor returns every record sharing a title key, sorted by artist key.
func (c *Catalog) ArtistsFor(title string) []TrackRecord {
	byArtist := c.records[Normalize(title)]
	out := make([]TrackRecord, 0, len(byArtist))
	for _, k := range sortedKeys(byArtist) {
		out = append(out, byArtist[k].snapshot())
	}
	return out
}

// Records returns a snapshot of all records ordered by title key, then
// artist key.
func (c *Catalog) Records() []TrackRecord {
	out := make([]TrackRecord, 0, c.size)
	for _, keyTitle := range sortedKeys(c.records) {
		byArtist := c.records[keyTitle]
		for _, keyArtist := range sortedKeys(byArtist) {
			out = append(out, byArtist[keyArtist].snapshot())
		}
	}
	return out
}

// Len returns the number of distinct (title, artist) records.
func (c *Catalog) Len() int {
	return c.size
}

// Undated counts records that never received an air date.
func (c *Catalog) Undated() int {
	n := 0
	for _, byArtist := range c.records {
		for _, r := range byArtist {
			if len(r.shows) == 0 {
				n++
			}
		}
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
