package frame

// FillNumericZeros returns a new Dataset in which every numeric column has
// its missing cells replaced with a typed zero. A column is numeric when
// its first valid cell is numeric; the fill value carries that cell's
// runtime type, so an int64 column fills with int64(0) and a float64
// column with float64(0).
//
// Replacing missing measurements with zero conflates "no data" with an
// actual reading of zero. GIS services expect dense numeric attributes, so
// this matches what they consume; callers that need to distinguish the two
// must snapshot the dataset before conversion.
//
// The input dataset is never modified. Columns that need no fill share
// their cell storage with the result.
func FillNumericZeros(d *Dataset) *Dataset {
	cols := make([]Column, len(d.cols))
	for i, c := range d.cols {
		cols[i] = fillColumn(c)
	}
	out, err := New(cols...)
	if err != nil {
		// d was already validated; its shape cannot regress here.
		panic(err)
	}
	return out
}

func fillColumn(c Column) Column {
	sample := c.FirstValid()
	if !IsNumeric(sample) {
		return c
	}

	zero := zeroOf(sample)
	var filled []any
	for i, v := range c.Values {
		if !IsMissing(v) {
			continue
		}
		if filled == nil {
			filled = make([]any, len(c.Values))
			copy(filled, c.Values)
		}
		filled[i] = zero
	}
	if filled == nil {
		return c
	}
	return Column{Name: c.Name, Values: filled}
}
