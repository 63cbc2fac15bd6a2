package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/penwyp/go-path-tracer/internal/core/model"
)

const fieldSeparator = ","

// EncodeLine renders one session-file record:
//
//	X,Y,Z,elapsedTime,unixTimestamp,name
//
// Floats use the shortest decimal form that parses back to the same value.
// The name is written verbatim; a comma inside it corrupts the record.
func EncodeLine(s model.Sample, unixTimestamp int64) string {
	fields := []string{
		formatFloat(s.Position.X),
		formatFloat(s.Position.Y),
		formatFloat(s.Position.Z),
		formatFloat(s.ElapsedTime),
		strconv.FormatInt(unixTimestamp, 10),
		s.Name,
	}
	return strings.Join(fields, fieldSeparator)
}

// DecodeLine parses one record. It reports false for the header line and for
// any line whose first four fields are missing or not numeric; the returned
// sample is then the zero value. Records with fewer than six fields decode
// with an empty name.
func DecodeLine(line string) (model.Sample, bool) {
	fields := strings.Split(line, fieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) < 4 {
		return model.Sample{}, false
	}

	var values [4]float64
	for i := range values {
		v, ok := parseNumeric(fields[i])
		if !ok {
			return model.Sample{}, false
		}
		values[i] = v
	}

	sample := model.Sample{
		Position:    model.Vector3{X: values[0], Y: values[1], Z: values[2]},
		ElapsedTime: values[3],
	}
	if len(fields) >= 6 {
		sample.Name = fields[5]
	}
	return sample, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumeric accepts plain decimals: an optional sign, digits and at most
// one dot. Exponents, hex floats, underscores, Inf and NaN are rejected.
func parseNumeric(field string) (float64, bool) {
	if !isDecimal(field) {
		return 0, false
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isDecimal(field string) bool {
	if field != "" && (field[0] == '+' || field[0] == '-') {
		field = field[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(field); i++ {
		switch c := field[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
