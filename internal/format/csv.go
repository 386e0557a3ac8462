package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/synth"
)

// renderCSV writes an RFC 4180 table: header row from the schema's
// field order, one row per record. encoding/csv handles quoting of
// delimiters, quotes and newlines.
func renderCSV(batch *synth.Batch) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(batch.Schema.FieldNames()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(batch.Schema.Fields))
	for _, record := range batch.Records {
		for i, field := range batch.Schema.Fields {
			row[i] = csvCell(record[field.Name])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return buf.Bytes(), nil
}

func csvCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return formatTimestamp(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
