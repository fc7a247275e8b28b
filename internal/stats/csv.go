package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
)

// CSVHeader is the first row of a weight export
var CSVHeader = []string{"Date", "Weight", "Unit", "Notes"}

// ErrBadCSVHeader is returned when an import does not start with CSVHeader
var ErrBadCSVHeader = errors.New("csv header must be Date,Weight,Unit,Notes")

// ExportFilename names a weight export produced on day
func ExportFilename(day time.Time) string {
	return fmt.Sprintf("weight-data-%s.csv", day.Format(DateLayout))
}

// WriteWeightCSV writes entries in the order given
func WriteWeightCSV(w io.Writer, entries []*domain.WeightEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		row := []string{
			e.Date.Format(DateLayout),
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			e.Unit,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseWeightCSV reads an export back into entries. Dates come back as UTC midnight.
func ParseWeightCSV(r io.Reader) ([]*domain.WeightEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrBadCSVHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, col := range CSVHeader {
		if strings.TrimPrefix(header[i], "\ufeff") != col {
			return nil, ErrBadCSVHeader
		}
	}

	var entries []*domain.WeightEntry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		date, err := time.Parse(DateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, rec[0], err)
		}
		weight, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight %q: %w", line, rec[1], err)
		}
		entries = append(entries, &domain.WeightEntry{
			Date:   date,
			Weight: weight,
			Unit:   rec[2],
			Notes:  rec[3],
		})
	}
	return entries, nil
}
