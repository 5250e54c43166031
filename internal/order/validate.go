package order

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Error codes reported per field. Views translate them through the
// "order.errors" catalog section.
const (
	CodeNameRequired        = "name_required"
	CodePhoneRequired       = "phone_required"
	CodePhoneInvalid        = "phone_invalid"
	CodeDescriptionRequired = "description_required"
)

// FieldErrors maps a field to its error code.
type FieldErrors map[Field]string

// OK reports whether there are no errors.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// Get returns the code for f, or "".
func (e FieldErrors) Get(f Field) string { return e[f] }

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range Fields {
		if code, ok := e[f]; ok {
			parts = append(parts, string(f)+": "+code)
		}
	}
	return "order: " + strings.Join(parts, ", ")
}

// PhoneRule decides whether a trimmed, non-empty phone is acceptable.
type PhoneRule interface {
	Valid(phone string) bool
	Name() string
}

type patternRule struct{ re *regexp.Regexp }

func (r patternRule) Valid(phone string) bool {
	return r.re.MatchString(phone)
}

func (patternRule) Name() string { return "pattern" }

type digitsRule struct{ min, max int }

func (r digitsRule) Valid(phone string) bool {
	n := 0
	for _, c := range phone {
		if unicode.IsDigit(c) {
			n++
		}
	}
	return n >= r.min && n <= r.max
}

func (digitsRule) Name() string { return "digits" }

var (
	// PhonePattern accepts ten or more digits, spaces, dashes, plus signs
	// and parentheses.
	PhonePattern PhoneRule = patternRule{re: regexp.MustCompile(`^[\d\s\-+()]{10,}$`)}

	// PhoneDigits accepts 10 or 11 digits, ignoring any other characters.
	PhoneDigits PhoneRule = digitsRule{min: 10, max: 11}
)

// ParsePhoneRule resolves a rule by name. Empty means PhonePattern.
func ParsePhoneRule(name string) (PhoneRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pattern":
		return PhonePattern, nil
	case "digits":
		return PhoneDigits, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPhoneRule, name)
}

// Validate checks s and returns an error code per failing field. The title
// is optional. A nil rule means PhonePattern.
func Validate(s Submission, rule PhoneRule) FieldErrors {
	if rule == nil {
		rule = PhonePattern
	}

	errs := FieldErrors{}
	if strings.TrimSpace(s.Name) == "" {
		errs[FieldName] = CodeNameRequired
	}

	phone := strings.TrimSpace(s.Phone)
	switch {
	case phone == "":
		errs[FieldPhone] = CodePhoneRequired
	case !rule.Valid(phone):
		errs[FieldPhone] = CodePhoneInvalid
	}

	if strings.TrimSpace(s.Description) == "" {
		errs[FieldDescription] = CodeDescriptionRequired
	}
	return errs
}
