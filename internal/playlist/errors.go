package playlist

import (
	"errors"
	"fmt"
)

// ErrUnparseableDate is the sentinel wrapped by DateParseError.
var ErrUnparseableDate = errors.New("unparseable air date")

// DateParseError reports a header date that survived every repair and still
// could not be parsed. It is fatal for a build: the repair table needs a new
// entry for the shape that produced it.
type DateParseError struct {
	Raw      string // date text as captured from the header
	Repaired string // text handed to the date parser
	Cause    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse air date %q (repaired to %q): %v", e.Raw, e.Repaired, e.Cause)
}

func (e *DateParseError) Unwrap() []error {
	return []error{ErrUnparseableDate, e.Cause}
}

// LineError attaches a 1-based line number to an error raised while
// scanning a show.
type LineError struct {
	LineNo int
	Line   string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineNo, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
