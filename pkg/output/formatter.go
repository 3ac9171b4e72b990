// Package output provides shared output formatting for the CLI commands.
// It supports four output modes:
//   - Default: Human-readable text output
//   - JSON: Pretty-printed JSON output
//   - Minimal: Terse text output (no empty values, no section rules)
//   - Minimal+JSON: Single-line JSON with abbreviated keys and no empty fields
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting with support for JSON and minimal modes.
type Formatter struct {
	JSON    bool // Output as JSON
	Minimal bool // Output in minimal mode
	Writer  io.Writer
}

// New creates a new Formatter with the given options.
func New(jsonOutput, minimal bool, w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{
		JSON:    jsonOutput,
		Minimal: minimal,
		Writer:  w,
	}
}

// KeyAbbreviations maps full key names to abbreviated versions for minimal JSON output.
// "count" is left as is.
var KeyAbbreviations = map[string]string{
	"title":         "t",
	"artist":        "a",
	"shows":         "sh",
	"first":         "f1",
	"plays":         "p",
	"number":        "no",
	"air_date":      "d",
	"raw_date":      "rd",
	"line":          "l",
	"text":          "x",
	"note":          "nt",
	"name":          "n",
	"tracks":        "trk",
	"unmatched":     "um",
	"headers":       "h",
	"header_count":  "hc",
	"problems":      "pr",
	"special_topic": "st",
	"key":           "k",
	"path":          "pa",
	"message":       "msg",
	"error":         "err",
	"files":         "fs",
}

// Print outputs the data according to the formatter's configuration.
// textFunc renders the default text output; if nil, JSON is used instead.
func (f *Formatter) Print(data interface{}, textFunc func(io.Writer, interface{})) error {
	if f.JSON || textFunc == nil {
		return f.printJSON(data)
	}
	textFunc(f.Writer, data)
	return nil
}

func (f *Formatter) printJSON(data interface{}) error {
	var (
		out []byte
		err error
	)
	if f.Minimal {
		out, err = json.Marshal(f.minimize(data))
	} else {
		out, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(f.Writer, string(out))
	return nil
}

// minimize converts structs and maps to maps with abbreviated keys, dropping
// omitempty fields that are empty.
func (f *Formatter) minimize(data interface{}) interface{} {
	if data == nil {
		return nil
	}

	val := reflect.ValueOf(data)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		return f.minimize(val.Elem().Interface())
	}

	switch val.Kind() {
	case reflect.Struct:
		return f.minimizeStruct(val)
	case reflect.Map:
		result := make(map[string]interface{}, val.Len())
		for _, key := range val.MapKeys() {
			result[abbreviate(fmt.Sprintf("%v", key.Interface()))] = f.minimize(val.MapIndex(key).Interface())
		}
		return result
	case reflect.Slice, reflect.Array:
		result := make([]interface{}, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			if elem := val.Index(i); !isEmpty(elem) {
				result = append(result, f.minimize(elem.Interface()))
			}
		}
		return result
	default:
		return data
	}
}

func (f *Formatter) minimizeStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() {
			continue
		}

		tag := typ.Field(i).Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = typ.Field(i).Name
		}
		// zero values without omitempty are meaningful
		if strings.Contains(opts, "omitempty") && isEmpty(field) {
			continue
		}

		result[abbreviate(name)] = f.minimize(field.Interface())
	}

	return result
}

func abbreviate(key string) string {
	if abbrev, ok := KeyAbbreviations[strings.ToLower(key)]; ok {
		return abbrev
	}
	return key
}

func isEmpty(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	switch val.Kind() {
	case reflect.String:
		return val.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Slice, reflect.Array, reflect.Map:
		return val.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	default:
		return false
	}
}

// PrintLine prints a key-value pair, skipping empty values in minimal mode.
func (f *Formatter) PrintLine(key string, value interface{}) {
	if f.Minimal && (value == nil || isEmpty(reflect.ValueOf(value))) {
		return
	}
	fmt.Fprintf(f.Writer, "%s: %v\n", key, value)
}

// PrintSection prints a section header.
func (f *Formatter) PrintSection(title string) {
	if !f.Minimal {
		fmt.Fprintf(f.Writer, "---\n%s\n", title)
	}
}

// PrintTable renders rows as aligned columns. The header row is omitted in
// minimal mode.
func (f *Formatter) PrintTable(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	if !f.Minimal && len(header) > 0 {
		fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

// PrintError outputs an error respecting JSON and Minimal modes.
// In JSON mode it goes to the writer for parsing; in text mode to stderr.
// Returns the exit code (always 1 for errors).
func (f *Formatter) PrintError(err error) int {
	if f.JSON {
		var result interface{} = ErrorResult{Error: true, Message: err.Error()}
		out, _ := json.MarshalIndent(result, "", "  ")
		if f.Minimal {
			out, _ = json.Marshal(f.minimize(result))
		}
		fmt.Fprintln(f.Writer, string(out))
		return 1
	}

	w := f.Writer
	if w == os.Stdout {
		w = os.Stderr
	}
	if f.Minimal {
		fmt.Fprintln(w, err.Error())
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return 1
}

// ErrorResult is the JSON shape of a reported error.
type ErrorResult struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
