package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/diffkit/internal/linediff"
)

// Sheet names used by WriteXLSX.
const (
	DiffSheet    = "Diff"
	SummarySheet = "Summary"
)

var xlsxHeader = []interface{}{"Type", "Old", "New", "Line"}

// WriteXLSX saves the document as a workbook with one row per entry and a
// summary sheet.
func WriteXLSX(path string, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DiffSheet); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", SummarySheet, err)
	}

	styles, err := kindStyles(f)
	if err != nil {
		return err
	}

	if err := setRow(f, DiffSheet, 1, xlsxHeader); err != nil {
		return err
	}
	for i, e := range doc.Entries {
		row := i + 2
		if err := setRow(f, DiffSheet, row, []interface{}{e.Kind.String(), cellLine(e.OldLine), cellLine(e.NewLine), e.Text}); err != nil {
			return err
		}
		if style, ok := styles[e.Kind]; ok {
			from, _ := excelize.CoordinatesToCellName(1, row)
			to, _ := excelize.CoordinatesToCellName(len(xlsxHeader), row)
			if err := f.SetCellStyle(DiffSheet, from, to, style); err != nil {
				return fmt.Errorf("could not style row %d: %w", row, err)
			}
		}
	}
	if err := f.SetColWidth(DiffSheet, "D", "D", 80); err != nil {
		return fmt.Errorf("could not size columns: %w", err)
	}

	summary := [][]interface{}{
		{"Original", doc.Original},
		{"Modified", doc.Modified},
		{"Added", doc.Stats.Added},
		{"Removed", doc.Stats.Removed},
		{"Unchanged", doc.Stats.Unchanged},
	}
	for i, values := range summary {
		if err := setRow(f, SummarySheet, i+1, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cellName, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cellName, v); err != nil {
			return fmt.Errorf("could not set cell %s: %w", cellName, err)
		}
	}
	return nil
}

// cellLine leaves the cell blank for a missing line number.
func cellLine(n int) interface{} {
	if n == 0 {
		return ""
	}
	return n
}

func kindStyles(f *excelize.File) (map[linediff.Kind]int, error) {
	fills := map[linediff.Kind]string{
		linediff.Added:   "#E6FFEC",
		linediff.Removed: "#FFEBE9",
	}
	styles := make(map[linediff.Kind]int, len(fills))
	for kind, fill := range fills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("could not create style: %w", err)
		}
		styles[kind] = id
	}
	return styles, nil
}
