package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"datatable-backend/internal/i18n"
)

var validate = validator.New()

// RuleError is the reject value of a declarative rule. Message is a
// translation key; the caller renders it for the request locale.
type RuleError struct {
	Rule    RuleKind
	Message i18n.Key
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// Violation is one rejected field of a submission.
type Violation struct {
	Field string
	Rule  string
	// Key is set for rule violations. Custom callbacks carry their own text in
	// Message instead.
	Key     i18n.Key
	Message string
}

// Text renders the violation for a locale.
func (v Violation) Text(t i18n.Translator) string {
	if v.Key != "" {
		return t.T(v.Key)
	}
	return v.Message
}

var defaultMessages = map[RuleKind]i18n.Key{
	RuleRequired:   i18n.CommonValidationRequired,
	RuleMinLength:  i18n.CommonValidationMinLength,
	RuleMaxLength:  i18n.CommonValidationMaxLength,
	RuleMin:        i18n.CommonValidationMin,
	RuleMax:        i18n.CommonValidationMax,
	RulePattern:    i18n.CommonValidationPattern,
	RuleEmail:      i18n.CommonValidationEmail,
	RuleOneOf:      i18n.CommonValidationOneOf,
	RuleExpression: i18n.CommonValidationInvalid,
}

func reject(r Rule) *RuleError {
	msg := r.Message
	if msg == "" {
		msg = defaultMessages[r.Kind]
	}
	return &RuleError{Rule: r.Kind, Message: msg}
}

// Validator returns the field's rules and callback folded into the single
// value contract: nil accepts, an error rejects. Expression rules see an empty
// record; use Check when the rest of the submission is known.
func (f FieldDescriptor) Validator() func(value any) error {
	return func(value any) error {
		return f.Check(value, nil)
	}
}

// Check validates one value with record holding the whole submission.
func (f FieldDescriptor) Check(value any, record map[string]any) error {
	if isEmpty(value) {
		if f.Required {
			return reject(Rule{Kind: RuleRequired})
		}
		return nil
	}

	if err := f.checkType(value); err != nil {
		return err
	}
	if len(f.Options) > 0 && f.APIEndpoint == "" && (f.Type == FieldSelect || f.Type == FieldMultiselect) {
		allowed := make([]string, len(f.Options))
		for i, o := range f.Options {
			allowed[i] = o.Value
		}
		if err := checkRule(Rule{Kind: RuleOneOf, Value: allowed}, value, record); err != nil {
			return err
		}
	}
	for _, r := range f.Rules {
		if err := checkRule(r, value, record); err != nil {
			return err
		}
	}
	if f.Validate != nil {
		return f.Validate(value)
	}
	return nil
}

func (f FieldDescriptor) checkType(value any) error {
	switch f.Type {
	case FieldNumber:
		if _, ok := toDecimal(value); !ok {
			return &RuleError{Rule: "type", Message: i18n.CommonValidationInvalid}
		}
	case FieldToggle:
		if _, ok := value.(bool); !ok {
			return &RuleError{Rule: "type", Message: i18n.CommonValidationInvalid}
		}
	case FieldEmail:
		return checkRule(Rule{Kind: RuleEmail}, value, nil)
	}
	return nil
}

func checkRule(r Rule, value any, record map[string]any) error {
	switch r.Kind {
	case RuleRequired:
		if isEmpty(value) {
			return reject(r)
		}

	case RuleMinLength, RuleMaxLength:
		n, ok := length(value)
		if !ok {
			return nil
		}
		limit, ok := toDecimal(r.Value)
		if !ok {
			return nil
		}
		l := decimal.NewFromInt(int64(n))
		if r.Kind == RuleMinLength && l.LessThan(limit) || r.Kind == RuleMaxLength && l.GreaterThan(limit) {
			return reject(r)
		}

	case RuleMin, RuleMax:
		num, ok := toDecimal(value)
		if !ok {
			return reject(r)
		}
		limit, ok := toDecimal(r.Value)
		if !ok {
			return nil
		}
		if r.Kind == RuleMin && num.LessThan(limit) || r.Kind == RuleMax && num.GreaterThan(limit) {
			return reject(r)
		}

	case RulePattern:
		s, ok := value.(string)
		if !ok {
			return reject(r)
		}
		src, _ := r.Value.(string)
		re, err := compilePattern(src)
		if err != nil || !re.MatchString(s) {
			return reject(r)
		}

	case RuleEmail:
		s, ok := value.(string)
		if !ok || validate.Var(s, "required,email") != nil {
			return reject(r)
		}

	case RuleOneOf:
		allowed := toStrings(r.Value)
		for _, v := range valuesOf(value) {
			if !contains(allowed, fmt.Sprint(v)) {
				return reject(r)
			}
		}

	case RuleExpression:
		if record == nil {
			record = map[string]any{}
		}
		violated, err := evalBool(r.Expression, map[string]any{"value": value, "record": record})
		if err != nil {
			// Configuration error; lint reports it.
			return nil
		}
		if violated {
			return reject(r)
		}
	}
	return nil
}

// ValidateSubmission checks every visible field of section against values.
func ValidateSubmission(section *FormSection, values map[string]any) []Violation {
	if values == nil {
		values = map[string]any{}
	}
	var out []Violation
	for _, f := range section.Fields() {
		if !IsVisible(f, values) {
			continue
		}
		v, _ := Lookup(values, f.Key)
		err := f.Check(v, values)
		if err == nil {
			continue
		}
		var re *RuleError
		if errors.As(err, &re) {
			out = append(out, Violation{Field: f.Key, Rule: string(re.Rule), Key: re.Message})
			continue
		}
		out = append(out, Violation{Field: f.Key, Rule: "custom", Message: err.Error()})
	}
	return out
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

func length(v any) (int, bool) {
	switch val := v.(type) {
	case string:
		return utf8.RuneCountInString(val), true
	case []any:
		return len(val), true
	case []string:
		return len(val), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case int32:
		return decimal.NewFromInt32(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func toStrings(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, len(val))
		for i, x := range val {
			out[i] = fmt.Sprint(x)
		}
		return out
	case string:
		return strings.Fields(val)
	}
	return nil
}

func valuesOf(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
