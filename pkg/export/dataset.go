package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/form-builder/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// SubmissionsDataset flattens submissions into a table. When a template is
// provided its field order and labels drive the columns; otherwise columns
// are the union of data keys in lexical order.
func SubmissionsDataset(subs []models.FormSubmission, template *models.FormTemplate) Dataset {
	meta := []string{"submission_id", "form", "submitted_by", "submitted_at"}

	type column struct {
		key   string
		label string
	}
	var cols []column
	if template != nil {
		for _, f := range template.Fields {
			cols = append(cols, column{key: f.ID, label: f.Label})
		}
	} else {
		seen := map[string]struct{}{}
		for _, s := range subs {
			for k := range s.Data {
				seen[k] = struct{}{}
			}
		}
		keys := make([]string, 0, len(seen))
		for k := range seen {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cols = append(cols, column{key: k, label: k})
		}
	}

	headers := make([]string, 0, len(meta)+len(cols))
	headers = append(headers, meta...)
	for _, c := range cols {
		headers = append(headers, c.label)
	}

	rows := make([]map[string]string, 0, len(subs))
	for _, s := range subs {
		row := map[string]string{
			"submission_id": s.ID,
			"form":          s.FormTemplateName,
			"submitted_by":  s.SubmittedBy,
			"submitted_at":  s.SubmittedAt.UTC().Format(time.RFC3339),
		}
		for _, c := range cols {
			row[c.label] = cellString(s.Data[c.key])
		}
		rows = append(rows, row)
	}

	return Dataset{Headers: headers, Rows: rows}
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers arrive as float64; render integers without a
		// trailing fraction.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}
