package tabio

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/featureset/internal/frame"
)

// CSVOptions configures the CSV reader.
type CSVOptions struct {
	Delimiter  rune   // default ','
	Comment    rune   // comment character (0 = none)
	Charset    string // IANA charset name; empty means UTF-8
	LazyQuotes bool
	TrimSpace  bool
	RawStrings bool // disable per-cell type inference
}

// ReadCSV reads a CSV document into a dataset. The first record is the
// header; data cells are type-inferred unless RawStrings is set.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) (*frame.Dataset, error) {
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, eris.Wrapf(err, "csv: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // ragged rows are padded later

	var header []string
	var rows [][]string

	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, eris.New("csv: missing header row")
	}

	return datasetFromStringRows(header, rows, !opts.RawStrings)
}
