package export

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// XLSXSheet is the worksheet holding the catalog.
const XLSXSheet = "Tracks"

// xlsxColumns is the header row; shows are joined with xlsxShowSep.
var xlsxColumns = []interface{}{"title", "artist", "shows", "first"}

const xlsxShowSep = ", "

// XLSXFile exports the catalog as a spreadsheet, one row per track.
type XLSXFile struct {
	Path string
}

// Write replaces the workbook with the records.
func (x *XLSXFile) Write(ctx context.Context, records []playlist.TrackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &xlsxColumns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(XLSXSheet, 1, 1, style)
	}
	_ = f.SetColWidth(XLSXSheet, "A", "B", 40)

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Title, r.Artist, strings.Join(r.Shows, xlsxShowSep), r.First}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return withLock(x.Path, func() error {
		if err := f.SaveAs(x.Path); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return nil
	})
}

// Read loads the records back from the first worksheet.
func (x *XLSXFile) Read(ctx context.Context) ([]playlist.TrackRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(x.Path); err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var rows [][]string
	err := withReadLock(x.Path, func() error {
		f, err := excelize.OpenFile(x.Path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
		}
		rows, err = f.GetRows(sheets[0])
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] != "title" {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}

	records := make([]playlist.TrackRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}
		shows := []string{}
		if s := cell(2); s != "" {
			shows = strings.Split(s, xlsxShowSep)
		}
		records = append(records, playlist.TrackRecord{
			Title:  cell(0),
			Artist: cell(1),
			Shows:  shows,
			First:  cell(3),
		})
	}
	return records, nil
}
