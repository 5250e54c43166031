package order

import (
	"net/url"
	"strings"
)

// FieldMap maps form fields to the external form's entry IDs.
type FieldMap struct {
	Name        string
	Phone       string
	OrderTitle  string
	Description string
}

// DefaultFieldMap holds the entry IDs of the shop's order form.
var DefaultFieldMap = FieldMap{
	Name:        "entry.1779351425",
	Phone:       "entry.612053626",
	OrderTitle:  "entry.420437738",
	Description: "entry.946057571",
}

// Pair is one encoded form field.
type Pair struct {
	Key   string
	Value string
}

// Pairs returns the non-empty fields of s in display order.
func (m FieldMap) Pairs(s Submission) []Pair {
	pairs := make([]Pair, 0, len(Fields))
	for _, f := range Fields {
		v := s.Value(f)
		if v == "" {
			continue
		}
		pairs = append(pairs, Pair{Key: m.entry(f), Value: v})
	}
	return pairs
}

// Encode returns s as form values. Empty fields are omitted.
func (m FieldMap) Encode(s Submission) url.Values {
	v := url.Values{}
	for _, p := range m.Pairs(s) {
		v.Set(p.Key, p.Value)
	}
	return v
}

// Query encodes s in display order, unlike url.Values.Encode which sorts
// keys.
func (m FieldMap) Query(s Submission) string {
	var b strings.Builder
	for i, p := range m.Pairs(s) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func (m FieldMap) entry(f Field) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldPhone:
		return m.Phone
	case FieldOrderTitle:
		return m.OrderTitle
	case FieldDescription:
		return m.Description
	}
	return ""
}
