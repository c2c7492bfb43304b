// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform rewrites one worksheet column so each cell carries its
// extracted hyperlink as visible text. A URL is resolved from the cell's
// native hyperlink annotation, a HYPERLINK formula, or a bare URL substring,
// in that order, and appended to the display text exactly once.
package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// urlPattern matches a bare HTTP or HTTPS URL inside cell text.
var urlPattern = regexp.MustCompile(`(?i)https?://\S+`)

// Apply rewrites the target column of the first sheet of the workbook at
// path, for every row from startRow (1-based) through the last used row.
// Cells where a URL was discovered and the separator is not yet present are
// set to text+sep+url; all other visited cells are written back unchanged.
// The workbook is saved even when nothing changed, so load/save formatting
// normalization stays consistent across runs. Returns the number of rows
// newly annotated.
func Apply(path string, startRow, column int, sep string) (changed int, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading rows of %s: %w", path, err)
	}

	for r := startRow; r <= len(rows); r++ {
		cell, err := excelize.CoordinatesToCellName(column, r)
		if err != nil {
			return changed, fmt.Errorf("cell reference (%d,%d): %w", column, r, err)
		}

		text, url, err := resolve(f, sheet, cell)
		if err != nil {
			return changed, fmt.Errorf("reading cell %s: %w", cell, err)
		}

		if url != "" && !strings.Contains(text, sep) {
			text += sep + url
			changed++
		}
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return changed, fmt.Errorf("writing cell %s: %w", cell, err)
		}
	}

	if err := f.Save(); err != nil {
		return changed, fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return changed, nil
}

// resolve reads one cell and determines its display text and URL. The URL
// sources are tried in priority order: hyperlink annotation, HYPERLINK
// formula (whose friendly-text argument overrides the display text), bare
// URL substring.
func resolve(f *excelize.File, sheet, cell string) (text, url string, err error) {
	text, err = f.GetCellValue(sheet, cell)
	if err != nil {
		return "", "", err
	}

	if has, target, err := f.GetCellHyperLink(sheet, cell); err == nil && has && target != "" {
		return text, target, nil
	}

	if formula, err := f.GetCellFormula(sheet, cell); err == nil && formula != "" {
		if u, friendly := ParseHyperlinkFormula(formula); u != "" {
			if friendly != "" {
				text = friendly
			}
			return text, u, nil
		}
	}

	return text, urlPattern.FindString(text), nil
}
