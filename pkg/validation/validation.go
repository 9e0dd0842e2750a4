// Package validation evaluates declarative per-field rule tables against
// inbound records. It never touches storage.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/deptemp/pkg/serrors"
)

const (
	RuleRequired = "required"
	RuleLength   = "length"
	RuleRange    = "range"
	RuleScale    = "scale"
	RuleEmail    = "email"
	RuleURL      = "url"
	RulePattern  = "pattern"
)

// PostCodeTag is the validator tag backed by the postal code pattern.
const PostCodeTag = "postcode"

var postCodePattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^\d{3}-?\d{4}`)
})

// Validate is the process-wide validator instance with custom tags registered.
var Validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(PostCodeTag, func(fl validator.FieldLevel) bool {
		return postCodePattern().MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
})

type Rule struct {
	Name    string
	Message string
	tag     string
	check   func(any) bool
}

func (r Rule) passes(value any) bool {
	if r.check != nil {
		return r.check(value)
	}
	return Validate().Var(value, r.tag) == nil
}

func Required(message string) Rule {
	return Rule{Name: RuleRequired, Message: message}
}

// Length bounds the number of characters (runes) of a string.
func Length(minLen, maxLen int, message string) Rule {
	return Rule{Name: RuleLength, Message: message, tag: fmt.Sprintf("min=%d,max=%d", minLen, maxLen)}
}

// IntRange bounds an integer, inclusive.
func IntRange(minValue, maxValue int64, message string) Rule {
	return Rule{Name: RuleRange, Message: message, tag: fmt.Sprintf("min=%d,max=%d", minValue, maxValue)}
}

// MaxDecimalExponent bounds the exponent a decimal may carry into a
// comparison. Comparing rescales both operands to the smaller exponent, so an
// input like 1e20000000 would otherwise materialise a 20-million-digit integer.
const MaxDecimalExponent = 64

func exponentInWindow(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -MaxDecimalExponent && exp <= MaxDecimalExponent
}

// DecimalRange bounds a decimal value, inclusive. Non-zero values whose
// exponent lies outside ±MaxDecimalExponent are out of range.
func DecimalRange(minValue, maxValue decimal.Decimal, message string) Rule {
	return Rule{Name: RuleRange, Message: message, check: func(v any) bool {
		d, ok := v.(decimal.Decimal)
		if !ok {
			return false
		}
		if !exponentInWindow(d) {
			if !d.IsZero() {
				return false
			}
			d = decimal.Zero
		}
		return d.GreaterThanOrEqual(minValue) && d.LessThanOrEqual(maxValue)
	}}
}

// Scale limits the number of significant fractional digits of a decimal.
// Values written with more than MaxDecimalExponent fractional digits fail.
func Scale(places int32, message string) Rule {
	return Rule{Name: RuleScale, Message: message, check: func(v any) bool {
		d, ok := v.(decimal.Decimal)
		if !ok {
			return false
		}
		if d.Exponent() >= -places {
			return true
		}
		if d.Exponent() < -MaxDecimalExponent {
			return false
		}
		return d.Equal(d.Truncate(places))
	}}
}

func Email(message string) Rule {
	return Rule{Name: RuleEmail, Message: message, tag: "email"}
}

func URL(message string) Rule {
	return Rule{Name: RuleURL, Message: message, tag: "url"}
}

// Pattern applies a registered validator tag such as PostCodeTag.
func Pattern(tag, message string) Rule {
	return Rule{Name: RulePattern, Message: message, tag: tag}
}

type Field[T any] struct {
	Name  string
	Value func(T) any
	Rules []Rule
}

func Of[T any](name string, value func(T) any, rules ...Rule) Field[T] {
	return Field[T]{Name: name, Value: value, Rules: rules}
}

// Schema is an ordered rule table for records of type T.
type Schema[T any] struct {
	fields []Field[T]
}

func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	return &Schema[T]{fields: fields}
}

// Violations evaluates every rule of every field and returns all failures in
// table order. Absent optional values (nil, nil pointer) only answer to Required.
func (s *Schema[T]) Violations(record T) serrors.Violations {
	var out serrors.Violations
	for _, field := range s.fields {
		value, present := resolve(field.Value(record))
		for _, rule := range field.Rules {
			if rule.Name == RuleRequired {
				if !present {
					out = append(out, serrors.Violation{Field: field.Name, Rule: rule.Name, Message: rule.Message})
				}
				continue
			}
			if !present {
				continue
			}
			if !rule.passes(value) {
				out = append(out, serrors.Violation{Field: field.Name, Rule: rule.Name, Message: rule.Message})
			}
		}
	}
	return out
}

// Validate returns a ValidationFailed error carrying every violation, or nil.
func (s *Schema[T]) Validate(record T) error {
	return s.Violations(record).Err()
}

func resolve(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}
