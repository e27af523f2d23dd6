package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

// Source column headers for the fixed text fields. Matching is exact:
// a renamed column lands in Lead.Extra instead.
const (
	colCompany   = "Company"
	colFirstName = "First Name"
	colLastName  = "Last Name"
	colEmail     = "Email"
	colPhone     = "Phone"
	colNotes     = "Notes"
)

// Load reads a lead file into an immutable Dataset. CSV is the default
// format; .xlsx/.xlsm go through excelize. Row order follows the source,
// all source columns are kept (unknown ones in Lead.Extra), and the
// score column's missing/empty/"/" values become the Unscored sentinel.
// No other field is altered. Two loads of identical content yield
// value-equal Datasets.
func Load(path string) (*types.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path}
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readSheet(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return build(rows, path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Ragged rows are a format-level tolerance; build guards every
	// cell access against short rows.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return rows, nil
}

func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("open file: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("read rows: %w", err)}
	}
	return rows, nil
}

func build(rows [][]string, path string) (*types.Dataset, error) {
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no header row")}
	}
	header := rows[0]

	dimIdx := map[types.Dimension]int{}
	for _, d := range types.AllDimensions {
		dimIdx[d] = -1
	}
	textIdx := map[string]int{
		colCompany:   -1,
		colFirstName: -1,
		colLastName:  -1,
		colEmail:     -1,
		colPhone:     -1,
		colNotes:     -1,
	}

	type extraCol struct {
		name string
		idx  int
	}
	var extras []extraCol
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = h
		matched := false
		for _, d := range types.AllDimensions {
			if h == d.Column() && dimIdx[d] == -1 {
				dimIdx[d] = i
				matched = true
				break
			}
		}
		if !matched {
			if idx, known := textIdx[h]; known && idx == -1 {
				textIdx[h] = i
				matched = true
			}
		}
		if !matched {
			extras = append(extras, extraCol{name: h, idx: i})
		}
	}

	var dims []types.Dimension
	for _, d := range types.AllDimensions {
		if dimIdx[d] >= 0 {
			dims = append(dims, d)
		}
	}

	leads := make([]types.Lead, 0, len(rows)-1)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		lead := types.Lead{
			Row:       i,
			Scoring:   normalizeScore(cell(row, dimIdx[types.DimScoring])),
			Vertical:  cell(row, dimIdx[types.DimVertical]),
			FollowUp:  cell(row, dimIdx[types.DimFollowUp]),
			Rep:       cell(row, dimIdx[types.DimRep]),
			Outcome:   cell(row, dimIdx[types.DimOutcome]),
			Company:   cell(row, textIdx[colCompany]),
			FirstName: cell(row, textIdx[colFirstName]),
			LastName:  cell(row, textIdx[colLastName]),
			Email:     cell(row, textIdx[colEmail]),
			Phone:     cell(row, textIdx[colPhone]),
			Notes:     cell(row, textIdx[colNotes]),
		}
		if len(extras) > 0 {
			lead.Extra = make(map[string]string, len(extras))
			for _, ec := range extras {
				if ec.idx < len(row) {
					lead.Extra[ec.name] = row[ec.idx]
				}
			}
		}
		leads = append(leads, lead)
	}

	return &types.Dataset{Leads: leads, Columns: columns, Dimensions: dims}, nil
}

// cell returns the row's value at idx, or "" when the column is absent
// or the row is short.
func cell(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

// normalizeScore applies the Unscored sentinel. Idempotent: a value
// already normalized passes through unchanged.
func normalizeScore(v string) string {
	if v == "" || v == "/" {
		return types.UnscoredTier
	}
	return v
}
