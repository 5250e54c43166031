package order

import (
	"net/url"

	"github.com/ehsanpg/mazzehabi/pkg/i18n"
	"github.com/ehsanpg/mazzehabi/pkg/sanitizer"
)

// Field names a form field. The values double as HTML input names.
type Field string

const (
	FieldName        Field = "name"
	FieldPhone       Field = "phone"
	FieldOrderTitle  Field = "orderTitle"
	FieldDescription Field = "description"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldPhone, FieldOrderTitle, FieldDescription}

// Rune caps applied by Sanitize.
const (
	MaxNameLength        = 200
	MaxPhoneLength       = 32
	MaxOrderTitleLength  = 200
	MaxDescriptionLength = 4000
)

// Submission is one order as typed by the visitor.
type Submission struct {
	Name        string
	Phone       string
	OrderTitle  string
	Description string
}

// FromForm reads a submission from posted form values.
func FromForm(v url.Values) Submission {
	return Submission{
		Name:        v.Get(string(FieldName)),
		Phone:       v.Get(string(FieldPhone)),
		OrderTitle:  v.Get(string(FieldOrderTitle)),
		Description: v.Get(string(FieldDescription)),
	}
}

// Value returns the value of f.
func (s Submission) Value(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldPhone:
		return s.Phone
	case FieldOrderTitle:
		return s.OrderTitle
	case FieldDescription:
		return s.Description
	}
	return ""
}

// Sanitize strips markup, trims whitespace and applies the length caps.
// Persian and Arabic-Indic digits in the phone are rewritten to ASCII.
func Sanitize(s Submission) Submission {
	return Submission{
		Name:        sanitizer.Text(s.Name, MaxNameLength),
		Phone:       sanitizer.Text(i18n.NormalizeDigits(s.Phone), MaxPhoneLength),
		OrderTitle:  sanitizer.Text(s.OrderTitle, MaxOrderTitleLength),
		Description: sanitizer.Text(s.Description, MaxDescriptionLength),
	}
}
