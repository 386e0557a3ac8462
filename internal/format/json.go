package format

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Lumos-Labs-HQ/mockforge/internal/synth"
)

// renderJSON writes the batch as an array of flat objects. Objects are
// assembled by hand because field order must match the schema
// declaration, which map marshaling would not preserve.
func renderJSON(batch *synth.Batch) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, record := range batch.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  {")
		for j, field := range batch.Schema.Fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(field.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to encode field name %s: %w", field.Name, err)
			}
			value, err := encodeValue(record[field.Name])
			if err != nil {
				return nil, fmt.Errorf("failed to encode field %s: %w", field.Name, err)
			}
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(value)
		}
		buf.WriteByte('}')
	}

	if len(batch.Records) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

func encodeValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case time.Time:
		return json.Marshal(formatTimestamp(val))
	default:
		return json.Marshal(val)
	}
}
