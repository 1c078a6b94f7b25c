package contact

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is the payload of one contact form submission.
type Input struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the user-editable fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

type fieldRule struct {
	tag      string
	messages map[string]string
}

var rules = map[string]fieldRule{
	FieldName: {
		tag: "min=2,max=50",
		messages: map[string]string{
			"min": "Name must be at least 2 characters",
			"max": "Name must be less than 50 characters",
		},
	},
	FieldEmail: {
		tag: "required,email",
		messages: map[string]string{
			"required": "Email is required",
			"email":    "Please enter a valid email address",
		},
	},
	FieldSubject: {
		tag: "min=3,max=100",
		messages: map[string]string{
			"min": "Subject must be at least 3 characters",
			"max": "Subject must be less than 100 characters",
		},
	},
	FieldMessage: {
		tag: "min=10,max=1000",
		messages: map[string]string{
			"min": "Message must be at least 10 characters",
			"max": "Message must be less than 1000 characters",
		},
	},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is a single failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors holds one entry per failing field.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// ByField indexes the errors by field name.
func (v ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		out[fe.Field] = fe.Message
	}
	return out
}

// ValidateField checks a single field, as done when the field loses focus.
// It returns nil when the value is acceptable or the field is unknown.
func ValidateField(field, value string) *FieldError {
	rule, ok := rules[field]
	if !ok {
		return nil
	}

	err := validate.Var(value, rule.tag)
	if err == nil {
		return nil
	}

	msg := "Invalid value"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if m, ok := rule.messages[verrs[0].Tag()]; ok {
			msg = m
		}
	}
	return &FieldError{Field: field, Message: msg}
}

// Validate checks every field and reports all failures at once.
func Validate(in Input) (Input, ValidationErrors) {
	var errs ValidationErrors
	for _, field := range Fields {
		if fe := ValidateField(field, in.value(field)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return Input{}, errs
	}
	return in, nil
}

func (in Input) value(field string) string {
	switch field {
	case FieldName:
		return in.Name
	case FieldEmail:
		return in.Email
	case FieldSubject:
		return in.Subject
	case FieldMessage:
		return in.Message
	}
	return ""
}

func (in *Input) set(field, value string) bool {
	switch field {
	case FieldName:
		in.Name = value
	case FieldEmail:
		in.Email = value
	case FieldSubject:
		in.Subject = value
	case FieldMessage:
		in.Message = value
	default:
		return false
	}
	return true
}
