package validator

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// The package validator and gin's binding engine share one rule set, so a
// struct tagged with `binding:"..."` is judged the same way at bind time and
// when a service re-checks it after normalising input.
func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	Register(validate)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register adds json field naming and the custom rules vnphone and cccd to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return IsPhone(NormalizePhone(fl.Field().String()))
	})
	_ = v.RegisterValidation("cccd", func(fl validator.FieldLevel) bool {
		return IsCCCD(strings.ReplaceAll(strings.TrimSpace(fl.Field().String()), " ", ""))
	})
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Struct validates s against its binding tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FieldErrors maps a binding or validation error to field -> failed tag.
// Errors that are not validation errors (malformed JSON) yield nil.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = e.Tag()
	}
	return out
}

// FirstError returns the path of the first failing field without the root
// struct name, e.g. "selectedSlots[0].bookingDate", and its failed tag.
func FirstError(err error) (path, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	e := verrs[0]
	path = e.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	return path, e.Tag(), true
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// NormalizePhone strips separators and turns a +84 prefix into a leading 0.
func NormalizePhone(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '.' || r == '-' {
			return -1
		}
		return r
	}, raw)
	if strings.HasPrefix(s, "+84") {
		s = "0" + s[3:]
	}
	return s
}

// IsPhone accepts a normalised Vietnamese number of 9 to 11 digits.
func IsPhone(s string) bool {
	return validate.Var(s, "numeric,min=9,max=11") == nil && !strings.ContainsAny(s, "+-.")
}

// IsCCCD accepts a citizen ID of 9 (old CMND) or 12 digits.
func IsCCCD(s string) bool {
	return (len(s) == 9 || len(s) == 12) && validate.Var(s, "numeric") == nil && !strings.ContainsAny(s, "+-.")
}
