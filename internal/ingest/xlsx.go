package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxLoader) Load(path string, opt Options) (*Dataset, error) {
	return LoadXLSX(path, opt)
}

// LoadXLSX reads one worksheet; the first row is the header. opt.SheetName
// selects by name (case-insensitive); otherwise opt.SheetIndex (1-based) is
// used, defaulting to the first sheet.
func LoadXLSX(path string, opt Options) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook '%s' has no sheets", filepath.Base(path))
	}
	target := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.SheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook '%s' has %d sheets)", idx, filepath.Base(path), len(sheets))
		}
		target = sheets[idx-1]
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	name := fmt.Sprintf("%s (sheet: %s)", filepath.Base(path), target)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return emptyDataset(name)
	}
	header := rows[0]
	pos := 1
	next := func() ([]string, error) {
		for pos < len(rows) {
			row := rows[pos]
			pos++
			if isBlank(row) {
				continue
			}
			return row, nil
		}
		return nil, nil
	}
	return collect(name, header, next, opt)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
