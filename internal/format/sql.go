package format

import (
	"github.com/Lumos-Labs-HQ/mockforge/internal/synth"
)

// renderSQL emits one multi-row INSERT for the batch. Table and column
// identifiers come from the schema definition and are re-checked by
// the guard; values only ever appear as escaped literals. An empty
// batch renders an empty artifact since a zero-tuple VALUES clause is
// not valid SQL.
func (f *Formatter) renderSQL(batch *synth.Batch) ([]byte, error) {
	if len(batch.Records) == 0 {
		return nil, nil
	}

	columns := batch.Schema.FieldNames()
	rows := make([][]any, len(batch.Records))
	for i, record := range batch.Records {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = record[col]
		}
		rows[i] = row
	}

	stmt, err := f.guard.RenderStatement(batch.Schema.Name, columns, rows)
	if err != nil {
		return nil, err
	}
	return []byte(stmt + "\n"), nil
}
