package playlist

import (
	"reflect"
	"testing"
)

func TestCatalogAddKeepsFirstDisplay(t *testing.T) {
	c := NewCatalog()
	c.Add("Fish Heads", "Barnes & Barnes", "1980-01-05")
	c.Add("FISH HEADS!", "Barnes and Barnes", "1979-06-10")
	c.Add("Fish Heads", "Barnes & Barnes", "1980-01-05")

	if c.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", c.Len())
	}
	rec := c.Records()[0]
	if rec.Title != "Fish Heads" || rec.Artist != "Barnes & Barnes" {
		t.Errorf("display text should be first seen, got %q / %q", rec.Title, rec.Artist)
	}
	if !reflect.DeepEqual(rec.Shows, []string{"1979-06-10", "1980-01-05"}) {
		t.Errorf("unexpected shows %v", rec.Shows)
	}
	if rec.First != "1979-06-10" {
		t.Errorf("expected first 1979-06-10, got %q", rec.First)
	}
	if rec.Plays() != 2 {
		t.Errorf("expected 2 plays, got %d", rec.Plays())
	}
}

func TestCatalogFirstIsMinimumNotFirstSeen(t *testing.T) {
	showA := NewCatalog()
	showA.Add("Dead Puppies", "Ogden Edsl", "1978-03-05")
	showB := NewCatalog()
	showB.Add("Dead Puppies", "Ogden Edsl", "1976-11-14")

	run := NewCatalog()
	run.Merge(showA)
	run.Merge(showB)

	rec, ok := run.Lookup("Dead Puppies", "Ogden Edsl")
	if !ok {
		t.Fatal("expected merged record")
	}
	if rec.First != "1976-11-14" {
		t.Errorf("expected first 1976-11-14, got %q", rec.First)
	}
	if !reflect.DeepEqual(rec.Shows, []string{"1976-11-14", "1978-03-05"}) {
		t.Errorf("unexpected shows %v", rec.Shows)
	}
}

func TestCatalogMergeOrderIndependentDates(t *testing.T) {
	a := NewCatalog()
	a.Add("Shaving Cream", "Benny Bell", "1975-05-04")
	b := NewCatalog()
	b.Add("Shaving Cream", "The Benny Bell", "1974-02-17")
	b.Add("Pico and Sepulveda", "Felix Figueroa", "")

	ab := NewCatalog()
	ab.Merge(a)
	ab.Merge(b)
	ba := NewCatalog()
	ba.Merge(b)
	ba.Merge(a)

	recAB, _ := ab.Lookup("Shaving Cream", "Benny Bell")
	recBA, _ := ba.Lookup("Shaving Cream", "Benny Bell")
	if !reflect.DeepEqual(recAB.Shows, recBA.Shows) || recAB.First != recBA.First {
		t.Errorf("dates depend on merge order: %+v vs %+v", recAB, recBA)
	}
	if recAB.Artist != "Benny Bell" || recBA.Artist != "The Benny Bell" {
		t.Errorf("display artist should follow first merge: %q, %q", recAB.Artist, recBA.Artist)
	}
	if ab.Len() != 2 || ab.Undated() != 1 {
		t.Errorf("expected 2 records with 1 undated, got %d / %d", ab.Len(), ab.Undated())
	}

	ab.Merge(nil)
	if ab.Len() != 2 {
		t.Error("merging nil should be a no-op")
	}
}

func TestCatalogRecordsSorted(t *testing.T) {
	c := NewCatalog()
	c.Add("Zoot Suit", "", "")
	c.Add("Ahab the Arab", "Ray Stevens", "")
	c.Add("Ahab the Arab", "Dr. Demento", "")

	var got []string
	for _, r := range c.Records() {
		tk, ak := r.Key()
		got = append(got, tk+"/"+ak)
	}
	expected := []string{"ahabarab/drdemento", "ahabarab/raystevens", "zootsuit/"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
