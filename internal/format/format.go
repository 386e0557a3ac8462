// Package format renders batches into their final artifact form.
package format

import (
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/sqlsafe"
	"github.com/Lumos-Labs-HQ/mockforge/internal/synth"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

type Formatter struct {
	guard *sqlsafe.Guard
}

func New(guard *sqlsafe.Guard) *Formatter {
	return &Formatter{guard: guard}
}

// Render maps the request's format tag to a renderer. The mapping is
// pure; an unrecognized tag is a request error.
func (f *Formatter) Render(batch *synth.Batch, format types.Format) (*types.Artifact, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case types.FormatJSON:
		data, err = renderJSON(batch)
	case types.FormatCSV:
		data, err = renderCSV(batch)
	case types.FormatSQL:
		data, err = f.renderSQL(batch)
	default:
		return nil, enginerr.New(enginerr.KindUnsupportedFormat, "unsupported output format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &types.Artifact{Format: format, Data: data}, nil
}

// formatTimestamp keeps date rendering identical across all three
// renderers.
func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
