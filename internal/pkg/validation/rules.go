package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Student identifier pattern - 7 digits
	StudentIDPattern = `^\d{7}$`

	// Card expiry pattern - MM/YY
	CardExpiryPattern = `^\d{2}/\d{2}$`

	// Name validation max length
	NameMaxLength = 60
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentID  *regexp.Regexp
	CardExpiry *regexp.Regexp
}{
	StudentID:  regexp.MustCompile(StudentIDPattern),
	CardExpiry: regexp.MustCompile(CardExpiryPattern),
}

// recordUnsafe are characters that would split a flat-file record
const recordUnsafe = ",|\r\n"

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the portal rules registered.
// It reads the same `binding` tags gin does, so one set of tags serves HTTP
// binding and direct calls from the services.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		if err := RegisterRules(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// rules maps each portal tag to its check
var rules = map[string]func(string) bool{
	"studentid":  IsStudentID,
	"fieldsafe":  IsFieldSafe,
	"trimmed":    IsTrimmed,
	"cardnumber": IsCardNumber,
	"cvv":        IsCVV,
	"cardexpiry": IsCardExpiry,
	"cardholder": func(s string) bool { return strings.TrimSpace(s) != "" },
}

// RegisterRules adds the portal tags to v:
//
//	studentid   seven digits
//	fieldsafe   no comma, pipe or line break
//	trimmed     no leading or trailing whitespace
//	cardnumber  16 digits, spaces ignored
//	cvv         3 digits
//	cardexpiry  MM/YY
//	cardholder  not blank
func RegisterRules(v *validator.Validate) error {
	for tag, check := range rules {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGinRules registers the portal tags on gin's binding validator so
// `binding:"..."` tags can use them.
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return RegisterRules(v)
}

// IsStudentID reports whether s is a well-formed student identifier
func IsStudentID(s string) bool {
	return CompiledPatterns.StudentID.MatchString(s)
}

// IsFieldSafe reports whether s can be stored as one record field
func IsFieldSafe(s string) bool {
	return !strings.ContainsAny(s, recordUnsafe)
}

// IsTrimmed reports whether s has no surrounding whitespace. Stored fields
// are trimmed on read, so a value that is not would never match again.
func IsTrimmed(s string) bool {
	return s == strings.TrimSpace(s)
}

// IsCardNumber reports whether s holds exactly 16 digits once spaces are removed
func IsCardNumber(s string) bool {
	digits := strings.Join(strings.Fields(s), "")
	return len(digits) == 16 && allDigits(digits)
}

// IsCVV reports whether s is a 3-digit card security code
func IsCVV(s string) bool {
	return len(s) == 3 && allDigits(s)
}

// IsCardExpiry reports whether s is an MM/YY expiry with a month of 01 to 12
func IsCardExpiry(s string) bool {
	if !CompiledPatterns.CardExpiry.MatchString(s) {
		return false
	}
	month := s[:2]
	return month >= "01" && month <= "12"
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Struct validates s and converts failures into a validation error whose
// details map each field to a readable message.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}

	details := make(map[string]interface{}, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := FieldMessage(fe)
		details[fe.Field()] = msg
		messages = append(messages, msg)
	}
	return apperrors.NewCustomError(apperrors.ErrValidationFailed, strings.Join(messages, "; ")).WithDetails(details)
}

// FieldMessage creates a human-readable validation error message
func FieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date in the form " + e.Param()
	case "studentid":
		return e.Field() + " must be a 7-digit student ID"
	case "fieldsafe":
		return e.Field() + " must not contain commas, pipes or line breaks"
	case "trimmed":
		return e.Field() + " must not start or end with spaces"
	case "cardnumber":
		return "Card number must be 16 digits"
	case "cvv":
		return "CVV must be 3 digits"
	case "cardexpiry":
		return "Expiration date must be in MM/YY format"
	case "cardholder":
		return "Card holder name is required"
	default:
		return fmt.Sprintf("%s validation failed: %s", e.Field(), e.Tag())
	}
}
