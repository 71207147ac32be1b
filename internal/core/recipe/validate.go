package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a draft's shape. The returned error wraps ErrInvalid.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return structError(validate.Struct(d))
}

// Validate checks the supplied fields of a patch. The returned error wraps
// ErrInvalid.
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name cannot be blank", ErrInvalid)
	}
	return structError(validate.Struct(p))
}

// Validate checks a filter snapshot.
func (f SearchFilters) Validate() error {
	if f.Difficulty != "" && !Difficulty(f.Difficulty).Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, f.Difficulty)
	}
	if f.Status != "" && !Status(f.Status).Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, f.Status)
	}
	return structError(validate.Struct(f))
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", lowerFirst(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", lowerFirst(fe.Field()), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// compact drops entries that are blank after trimming, keeping the original
// text of the rest.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
