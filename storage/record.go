package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// numberRegexp matches a plain decimal literal with optional sign, fraction
// and exponent. Hex, "Inf" and "NaN" stay strings.
var numberRegexp = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Record is one row of a delimited file keyed by header column, in header order.
// Values are float64 when the cell was numeric, otherwise string.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

func newRecord(capacity int) *Record {
	return &Record{fields: orderedmap.New[string, any](capacity)}
}

// NewRecord builds a Record from alternating key/value pairs. Intended for tests
// and callers that synthesise rows.
func NewRecord(kv ...any) *Record {
	r := newRecord(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		r.fields.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return r
}

func (r *Record) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Keys returns the column names in header order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (r *Record) Len() int {
	return r.fields.Len()
}

// Number returns the column as a float64 if it was coerced to one.
func (r *Record) Number(key string) (float64, bool) {
	v, ok := r.fields.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Text returns the column rendered as text, or "" when absent.
func (r *Record) Text(key string) string {
	v, ok := r.fields.Get(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}

// coerceValue trims raw and returns a float64 when the whole value is numeric.
func coerceValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" || !numberRegexp.MatchString(s) {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}
