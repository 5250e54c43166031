package views

import (
	"github.com/ehsanpg/mazzehabi/internal/order"
	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/works"
)

// Page is the data of the full page and the shell.
type Page struct {
	State    site.State
	Gallery  Gallery
	Order    OrderForm
	Lightbox *works.Item
}

// Gallery lists the works, or reports that they could not be loaded.
type Gallery struct {
	Items  []works.Item
	Failed bool
}

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is the banner above the order form.
type Notice struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref,omitempty"`
}

// OrderForm is the order section: form values, inline errors and the
// outcome of the last submission.
type OrderForm struct {
	Values   order.Submission
	Errors   order.FieldErrors
	Notice   *Notice
	Fallback *order.Fallback
}

// Field is one rendered form control.
type Field struct {
	Name      string
	Type      string
	Value     string
	Error     string
	MaxLength int
	Required  bool
	Multiline bool
	LTR       bool
	// Check is the URL that validates the field on blur, if any.
	Check string
}

// PhoneCheckURL validates the phone field while the visitor types the rest
// of the form.
const PhoneCheckURL = "/order/phone"

// Fields returns the form controls in display order.
func (f OrderForm) Fields() []Field {
	return []Field{
		f.field(order.FieldName, "text", order.MaxNameLength, true),
		f.field(order.FieldPhone, "tel", order.MaxPhoneLength, true),
		f.field(order.FieldOrderTitle, "text", order.MaxOrderTitleLength, false),
		f.field(order.FieldDescription, "", order.MaxDescriptionLength, true),
	}
}

func (f OrderForm) field(name order.Field, typ string, maxLen int, required bool) Field {
	return Field{
		Name:      string(name),
		Type:      typ,
		Value:     f.Values.Value(name),
		Error:     f.Errors.Get(name),
		MaxLength: maxLen,
		Required:  required,
		Multiline: name == order.FieldDescription,
		LTR:       name == order.FieldPhone,
		Check:     checkURL(name),
	}
}

// Field returns the control for name.
func (f OrderForm) Field(name order.Field) Field {
	for _, fd := range f.Fields() {
		if fd.Name == string(name) {
			return fd
		}
	}
	return Field{Name: string(name)}
}

func checkURL(name order.Field) string {
	if name == order.FieldPhone {
		return PhoneCheckURL
	}
	return ""
}

// ErrorPage describes a failed request.
type ErrorPage struct {
	State     site.State
	Code      int
	Message   string
	RequestID string
}
