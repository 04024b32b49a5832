package ui

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
)

// Contact form field messages
const (
	MsgInvalidName      = "Please enter a valid name (minimum 2 characters)"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgInvalidPassword  = "Password must be at least 8 characters with letters and numbers"
	MsgPasswordMismatch = "Passwords do not match"
	MsgContactSent      = "Thank you for your message! We will get back to you soon."
)

// ContactSubmission holds the contact form values
type ContactSubmission struct {
	Name     string `validate:"min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=8,alphanum,letterdigit"`
	Confirm  string `validate:"eqfield=Password"`
	Send     bool   `validate:"-"`
}

// ValidationError reports one invalid contact form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var fieldMessages = map[string]string{
	"Name":     MsgInvalidName,
	"Email":    MsgInvalidEmail,
	"Password": MsgInvalidPassword,
	"Confirm":  MsgPasswordMismatch,
}

var contactValidator = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("letterdigit", validateLetterDigit)
	return v
}

// validateLetterDigit requires at least one letter and one digit
func validateLetterDigit(fl validator.FieldLevel) bool {
	var letter, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// ValidateContact checks a submission and returns one error per invalid field, in form order.
// Name and email are trimmed first; passwords are compared verbatim.
func ValidateContact(sub ContactSubmission) []*ValidationError {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)

	err := contactValidator.Struct(sub)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ValidationError{{Field: "form", Message: err.Error()}}
	}

	seen := make(map[string]bool)
	var out []*ValidationError
	for _, e := range verrs {
		field := e.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, &ValidationError{Field: field, Message: fieldMessages[field]})
	}
	return out
}

// NewContactForm builds the huh form bound to sub
func NewContactForm(sub *ContactSubmission, width int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your name").
				Value(&sub.Name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&sub.Email),
			huh.NewInput().
				Title("Password").
				Description("At least 8 letters and numbers").
				EchoMode(huh.EchoModePassword).
				Value(&sub.Password),
			huh.NewInput().
				Title("Confirm Password").
				EchoMode(huh.EchoModePassword).
				Value(&sub.Confirm),
			huh.NewConfirm().
				Title("Send message?").
				Affirmative("Send").
				Negative("Cancel").
				Value(&sub.Send),
		),
	).WithTheme(NewAppTheme()).WithWidth(width).WithShowHelp(false)
}

// renderValidationErrors lists field errors under the form
func renderValidationErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(RenderError("✗ " + e.Message))
		b.WriteString("\n")
	}
	return b.String()
}
