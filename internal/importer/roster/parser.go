// Package roster parses client roster CSV exports into create params. It
// auto-detects which layout is being used by matching column headers against
// known profiles, the same way bank statement importers detect formats.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rmaldonado/obrix/internal/client"
	enc "github.com/rmaldonado/obrix/internal/encoding"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]client.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching roster layout found: expected planilla or agenda columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts clients from data rows using the matched profile.
// startIdx is the 0-based index of the first data row in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, startIdx int) ([]client.CreateParams, error) {
	var clients []client.CreateParams

	for i, row := range rows {
		rowNum := startIdx + i + 1 // 1-based file row, for error messages

		first, last, ok := parseName(p, cols, row)
		if !ok {
			// Blank name rows are trailing padding from the export.
			if rowEmpty(row) {
				continue
			}

			return nil, fmt.Errorf("row %d: missing client name", rowNum)
		}

		clients = append(clients, client.CreateParams{
			FirstName:       first,
			LastName:        last,
			Phone:           optionalValue(cols, row, p.PhoneCol),
			Email:           optionalValue(cols, row, p.EmailCol),
			Address:         optionalValue(cols, row, p.AddressCol),
			City:            optionalValue(cols, row, p.CityCol),
			State:           optionalValue(cols, row, p.StateCol),
			Zip:             optionalValue(cols, row, p.ZipCol),
			DNI:             optionalValue(cols, row, p.DNICol),
			Notes:           optionalValue(cols, row, p.NotesCol),
			ReferenceMedium: optionalValue(cols, row, p.RefCol),
			CreatedAt:       time.Now(),
		})
	}

	return clients, nil
}

func parseName(p *Profile, cols colIndex, row []string) (first, last string, ok bool) {
	switch p.NameMode {
	case nameSplit:
		first = cellValue(row, cols[p.FirstCol])
		last = cellValue(row, cols[p.LastCol])

		return first, last, first != "" && last != ""
	case nameFull:
		full := cellValue(row, cols[p.FullCol])
		if full == "" {
			return "", "", false
		}

		// First token is the given name; compound surnames keep the rest.
		first, last, found := strings.Cut(full, " ")
		if !found {
			return full, "", true
		}

		return first, last, true
	}

	return "", "", false
}

// optionalValue reads a profile column that may be absent from the layout.
func optionalValue(cols colIndex, row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
