package featureset

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/featureset/internal/frame"
)

// FieldType is an esri field type tag. The string values are wire literals
// and must match the service vocabulary byte for byte.
type FieldType string

const (
	FieldTypeString       FieldType = "esriFieldTypeString"
	FieldTypeDate         FieldType = "esriFieldTypeDate"
	FieldTypeSmallInteger FieldType = "esriFieldTypeSmallInteger"
	FieldTypeBigInteger   FieldType = "esriFieldTypeBigInteger"
	FieldTypeDouble       FieldType = "esriFieldTypeDouble"
	FieldTypeSingle       FieldType = "esriFieldTypeSingle"
)

// defaultStringLength is used when a string column's observed maximum
// length is unavailable, e.g. for an all-missing column.
const defaultStringLength = 255

// Field is one entry in a feature set's declared field schema. Alias
// always equals Name; Length is set only for string fields.
type Field struct {
	Name   string    `json:"name"`
	Alias  string    `json:"alias"`
	Type   FieldType `json:"type"`
	Length int       `json:"length,omitempty"`
}

// InferFields derives the field schema for a dataset: one Field per column,
// in column order. Each column's type is classified from its first valid
// cell; an all-missing column samples as the empty string and therefore
// infers a string field with the default length.
func InferFields(ds *frame.Dataset) ([]Field, error) {
	fields := make([]Field, 0, ds.NumCols())
	for i := 0; i < ds.NumCols(); i++ {
		f, err := inferField(ds.ColumnAt(i))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// inferField classifies a single column. The type switch is ordered:
// strings before dates before integers before floats, narrowest integer
// width first, so a value can only ever match its first applicable tag.
func inferField(col *frame.Column) (Field, error) {
	f := Field{Name: col.Name, Alias: col.Name}

	sample := col.FirstValid()
	allMissing := frame.IsMissing(sample)
	if allMissing {
		sample = ""
	}

	switch sample.(type) {
	case string:
		f.Type = FieldTypeString
		if allMissing {
			f.Length = defaultStringLength
		} else {
			f.Length = col.MaxStringLen()
		}
	case time.Time:
		f.Type = FieldTypeDate
	case int8, int16, uint8, uint16:
		f.Type = FieldTypeSmallInteger
	case int, int32, int64, uint, uint32, uint64:
		f.Type = FieldTypeBigInteger
	case float64:
		f.Type = FieldTypeDouble
	case float32:
		f.Type = FieldTypeSingle
	default:
		return Field{}, eris.Wrapf(ErrUnsupportedColumnType, "column %q sampled %T", col.Name, sample)
	}

	return f, nil
}
