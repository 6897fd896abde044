package tabio

import (
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/featureset/internal/frame"
)

// FromPgxRows drains a pgx result set into a dataset. The rows are closed
// when the function returns.
func FromPgxRows(rows pgx.Rows) (*frame.Dataset, error) {
	defer rows.Close()

	descs := rows.FieldDescriptions()
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = string(d.Name)
	}

	var records [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, eris.Wrap(err, "pgx: read row values")
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = normalizeSQLValue(v)
		}
		records = append(records, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "pgx: iterate rows")
	}

	return frame.New(columnsFromRows(names, records)...)
}
