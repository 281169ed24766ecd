package lead

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"jpchat/internal/locality"
	"jpchat/internal/model"
)

const (
	maxNameLen     = 120
	maxInterestLen = 200
	maxCityLen     = 120
	maxEmailLen    = 120
	minAge         = 10
	maxAge         = 110
)

var (
	nonDigits    = regexp.MustCompile(`\D`)
	emailPattern = regexp.MustCompile(`^.+@.+\..+$`)
)

// Kind tags the outcome of validating one answer.
type Kind int

const (
	// Accepted carries a normalized value to store.
	Accepted Kind = iota
	// Invalid forces the same field to be asked again.
	Invalid
	// Skip marks the field as skipped without blocking the flow.
	Skip
)

func (k Kind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case Invalid:
		return "invalid"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the tagged result of a field validator.
type Outcome struct {
	Kind   Kind
	Value  string
	Age    int
	Reason string
	// Locality is set for city answers and tells whether the gazetteer resolved them.
	Locality locality.Result
}

func accepted(v string) Outcome { return Outcome{Kind: Accepted, Value: v} }

func invalid(reason string) Outcome { return Outcome{Kind: Invalid, Reason: reason} }

// Validator converts raw answers into normalized field values.
type Validator struct {
	normalizer *locality.Normalizer
}

func NewValidator(n *locality.Normalizer) *Validator {
	return &Validator{normalizer: n}
}

// Validate normalizes raw as an answer for field.
func (v *Validator) Validate(field model.Field, raw string) Outcome {
	switch field {
	case model.FieldName:
		return validateText(raw, maxNameLen)
	case model.FieldInterest:
		return validateText(raw, maxInterestLen)
	case model.FieldCity:
		return v.validateCity(raw)
	case model.FieldState:
		return validateState(raw)
	case model.FieldAge:
		return validateAge(raw)
	case model.FieldEmail:
		return validateEmail(raw)
	}
	return invalid(fmt.Sprintf("unknown field %q", field))
}

func validateText(raw string, max int) Outcome {
	s := strings.TrimSpace(raw)
	if s == "" {
		return invalid("empty")
	}
	return accepted(truncate(s, max))
}

// validateCity never rejects a non-empty answer: unresolved text is kept as free text.
func (v *Validator) validateCity(raw string) Outcome {
	s := strings.TrimSpace(raw)
	if s == "" {
		return invalid("empty")
	}
	r := v.normalizer.Normalize(s)
	if r.OK() {
		return Outcome{Kind: Accepted, Value: r.Name(), Locality: r}
	}
	return Outcome{Kind: Accepted, Value: truncate(s, maxCityLen), Locality: r}
}

func validateState(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return invalid("empty")
	}
	code, ok := matchState(raw)
	if !ok {
		return invalid("unknown state")
	}
	return accepted(code)
}

func validateAge(raw string) Outcome {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return invalid("no digits")
	}
	if len(digits) > 3 {
		return invalid("out of range")
	}
	age, err := strconv.Atoi(digits)
	if err != nil {
		return invalid("not a number")
	}
	if age < minAge || age > maxAge {
		return invalid("out of range")
	}
	return Outcome{Kind: Accepted, Value: strconv.Itoa(age), Age: age}
}

// validateEmail skips bad addresses instead of asking again; contact data is optional.
func validateEmail(raw string) Outcome {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || utf8.RuneCountInString(s) > maxEmailLen || !emailPattern.MatchString(s) {
		return Outcome{Kind: Skip, Reason: "invalid email"}
	}
	return accepted(s)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
