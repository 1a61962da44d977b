package core

// codec.go converts between the contact store and its CSV interchange format.
//
// Export writes a fixed header (county,name,phone,email) followed by one row
// per stored region in ascending key order. Import looks columns up by header
// name, so column order and extra columns do not matter. Rows with a blank
// county are counted as skipped rather than failing the whole file; only a
// header without the required columns (or unreadable CSV) is a hard error.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Column names of the interchange format, in export order.
const (
	ColumnCounty = "county"
	ColumnName   = "name"
	ColumnPhone  = "phone"
	ColumnEmail  = "email"
)

// Columns is the export header row.
var Columns = []string{ColumnCounty, ColumnName, ColumnPhone, ColumnEmail}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportBatch is the decoded content of an import payload. Updates has not
// been applied to any store yet.
type ImportBatch struct {
	Accepted int
	Skipped  int
	Updates  map[string]Contact
}

// EncodeCSV writes contacts as CSV. Rows are sorted by key so the output is
// deterministic regardless of map iteration order.
func EncodeCSV(w io.Writer, contacts map[string]Contact) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Columns); err != nil {
		return err
	}

	keys := make([]string, 0, len(contacts))
	for k := range contacts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		c := contacts[k]
		if err := cw.Write([]string{k, c.Name, c.Phone, c.Email}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeCSV parses an import payload into per-region updates.
//
// A later row for the same county replaces an earlier one. Cells are trimmed;
// an empty name, phone or email is treated as absent.
func DecodeCSV(data []byte) (ImportBatch, error) {
	r := csv.NewReader(bytes.NewReader(normalizePayload(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return ImportBatch{}, newError(KindMalformedInput, missingHeadersMessage(Columns), nil)
	}
	if err != nil {
		return ImportBatch{}, newError(KindMalformedInput, "invalid csv header", err)
	}

	idx := makeHeaderIndex(header)
	var missing []string
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return ImportBatch{}, newError(KindMalformedInput, missingHeadersMessage(missing), nil)
	}

	batch := ImportBatch{Updates: make(map[string]Contact)}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ImportBatch{}, newError(KindMalformedInput, "invalid csv", err)
		}

		county := idx.cell(row, ColumnCounty)
		if county == "" {
			batch.Skipped++
			continue
		}

		batch.Updates[county] = Contact{
			Name:  idx.cell(row, ColumnName),
			Phone: idx.cell(row, ColumnPhone),
			Email: idx.cell(row, ColumnEmail),
		}
		batch.Accepted++
	}

	return batch, nil
}

// headerIndex maps a trimmed header name to its column position.
// Names are case-sensitive; a repeated name resolves to its last position.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// cell returns the trimmed value of the named column, or "" when the row is
// too short to have it.
func (h headerIndex) cell(row []string, name string) string {
	pos, ok := h[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// normalizePayload strips a UTF-8 byte order mark and drops invalid UTF-8
// bytes so spreadsheet exports with stray encodings still parse.
func normalizePayload(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ToValidUTF8(data, nil)
}

func missingHeadersMessage(missing []string) string {
	return fmt.Sprintf("CSV must include headers: %s (missing required column: %s)",
		strings.Join(Columns, ","), strings.Join(missing, ", "))
}
