package tabio

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/featureset/internal/frame"
)

// QueryDataset runs a SQL query and reads the full result into a dataset.
// The caller supplies the open database handle; driver registration (e.g.
// modernc.org/sqlite, pgx stdlib) is the caller's concern.
func QueryDataset(ctx context.Context, db *sql.DB, query string, args ...any) (*frame.Dataset, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sql: query")
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sql: read column names")
	}

	var records [][]any
	for rows.Next() {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "sql: scan row")
		}
		for i, v := range cells {
			cells[i] = normalizeSQLValue(v)
		}
		records = append(records, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sql: iterate rows")
	}

	return frame.New(columnsFromRows(names, records)...)
}

// normalizeSQLValue maps driver values onto frame cell types. Byte slices
// become strings; everything the frame already understands passes through.
func normalizeSQLValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case time.Time:
		return x
	default:
		return v
	}
}
