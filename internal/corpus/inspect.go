package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Inspection is a structural lint of one show file, independent of the
// line scanner.
type Inspection struct {
	Name     string   `json:"name"`
	Title    string   `json:"title,omitempty"`
	Headers  []string `json:"headers"`
	Strong   int      `json:"strong"`
	Problems []string `json:"problems,omitempty"`
}

// OK reports whether the file has no structural problems.
func (i *Inspection) OK() bool {
	return len(i.Problems) == 0
}

// Inspect parses a show file as HTML and reports its header and track
// marker counts. A file without exactly one h2 header, or without any
// strong track markers, is flagged.
func Inspect(path string) (*Inspection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open show file: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	ins := &Inspection{
		Name:    filepath.Base(path),
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		Headers: []string{},
	}

	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		ins.Headers = append(ins.Headers, strings.Join(strings.Fields(s.Text()), " "))
	})
	ins.Strong = doc.Find("strong").Length()

	switch n := len(ins.Headers); {
	case n == 0:
		ins.Problems = append(ins.Problems, "no <h2> header")
	case n > 1:
		ins.Problems = append(ins.Problems, fmt.Sprintf("%d <h2> headers", n))
	}
	if ins.Strong == 0 {
		ins.Problems = append(ins.Problems, "no <strong> track markers")
	}

	return ins, nil
}
