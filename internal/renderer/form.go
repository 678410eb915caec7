// Package renderer interprets a stored template into a live form instance:
// control construction, validation rule translation, value tracking and the
// submit/cancel flows.
package renderer

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/pkg/nav"
	"github.com/noah-isme/form-builder/pkg/notify"
)

// checkPriority orders rule categories for error reporting: the first
// failing category in this list owns the message shown for a field.
var checkPriority = []models.ValidationType{
	models.ValidationRequired,
	models.ValidationMinLength,
	models.ValidationMaxLength,
	models.ValidationMin,
	models.ValidationMax,
	models.ValidationPattern,
	models.ValidationEmail,
}

// check is one compiled validation predicate. ok reports whether the value
// passes; message is what the user sees when it does not.
type check struct {
	kind    models.ValidationType
	ok      func(value any) bool
	message string
}

// Control is one live input: definition, current value and UI flags.
type Control struct {
	Field    models.FormField
	Disabled bool

	value   any
	touched bool
	checks  []check
}

// SubmitFunc receives the form's values, keyed by field id, exactly once
// per successful submit.
type SubmitFunc func(data map[string]any)

// Form is a compiled template instance.
type Form struct {
	template  models.FormTemplate
	controls  map[string]*Control
	order     []string
	editable  bool
	notifier  notify.Notifier
	navigator nav.Navigator
	delay     time.Duration
	onSubmit  SubmitFunc
	logger    *zap.Logger
}

// Option configures a Form at compile time.
type Option func(*Form)

// WithNotifier routes user-facing submit feedback.
func WithNotifier(n notify.Notifier) Option {
	return func(f *Form) { f.notifier = n }
}

// WithNavigator routes post-submit and cancel navigation.
func WithNavigator(n nav.Navigator) Option {
	return func(f *Form) { f.navigator = n }
}

// WithRedirectDelay overrides the pause before the post-submit redirect.
func WithRedirectDelay(d time.Duration) Option {
	return func(f *Form) { f.delay = d }
}

// WithOnSubmit registers the submission sink.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(f *Form) { f.onSubmit = fn }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) { f.logger = logger }
}

// ReadOnly disables every control regardless of per-field flags.
func ReadOnly() Option {
	return func(f *Form) { f.editable = false }
}

var emailValidator = validator.New()

// Compile builds a live form from a template. providedData pre-fills
// controls by field id and wins over field defaults; absent both, the
// control starts at nil.
func Compile(template models.FormTemplate, providedData map[string]any, opts ...Option) *Form {
	f := &Form{
		template: template.Clone(),
		controls: make(map[string]*Control, len(template.Fields)),
		editable: true,
		delay:    1500 * time.Millisecond,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.notifier == nil {
		f.notifier = notify.NewLog(nil)
	}
	if f.navigator == nil {
		f.navigator = nav.NewLog(nil)
	}
	for _, field := range f.template.Fields {
		value := field.DefaultValue
		if provided, ok := providedData[field.ID]; ok {
			value = provided
		}
		f.controls[field.ID] = &Control{
			Field:    field,
			Disabled: !f.editable || field.Disabled,
			value:    value,
			checks:   compileChecks(field),
		}
		f.order = append(f.order, field.ID)
	}
	return f
}

// compileChecks translates a field's rule list into runtime predicates.
// When a category appears more than once the last rule governs. Unknown
// categories are skipped. Only the field's required flag produces the
// non-empty check; a "required" entry in the rule list carries no weight.
func compileChecks(field models.FormField) []check {
	latest := make(map[models.ValidationType]models.ValidationRule)
	if field.Required {
		latest[models.ValidationRequired] = models.ValidationRule{Type: models.ValidationRequired}
	}
	for _, rule := range field.Validation {
		switch rule.Type {
		case models.ValidationMinLength, models.ValidationMaxLength,
			models.ValidationMin, models.ValidationMax, models.ValidationPattern, models.ValidationEmail:
			latest[rule.Type] = rule
		}
	}

	var checks []check
	for _, kind := range checkPriority {
		rule, ok := latest[kind]
		if !ok {
			continue
		}
		if c, ok := compileCheck(kind, rule); ok {
			checks = append(checks, c)
		}
	}
	return checks
}

func compileCheck(kind models.ValidationType, rule models.ValidationRule) (check, bool) {
	switch kind {
	case models.ValidationRequired:
		return check{kind: kind, message: "This field is required", ok: func(v any) bool {
			return !isEmpty(v)
		}}, true
	case models.ValidationMinLength:
		n, ok := asInt(rule.Value)
		if !ok {
			return check{}, false
		}
		return check{kind: kind, message: fmt.Sprintf("Minimum length is %d characters", n), ok: func(v any) bool {
			s, isString := v.(string)
			if !isString || s == "" {
				return true
			}
			return len([]rune(s)) >= n
		}}, true
	case models.ValidationMaxLength:
		n, ok := asInt(rule.Value)
		if !ok {
			return check{}, false
		}
		return check{kind: kind, message: fmt.Sprintf("Maximum length is %d characters", n), ok: func(v any) bool {
			s, isString := v.(string)
			if !isString {
				return true
			}
			return len([]rune(s)) <= n
		}}, true
	case models.ValidationMin:
		bound, ok := asFloat(rule.Value)
		if !ok {
			return check{}, false
		}
		return check{kind: kind, message: fmt.Sprintf("Minimum value is %v", rule.Value), ok: func(v any) bool {
			num, numeric := asFloat(v)
			if !numeric || isEmpty(v) {
				return true
			}
			return num >= bound
		}}, true
	case models.ValidationMax:
		bound, ok := asFloat(rule.Value)
		if !ok {
			return check{}, false
		}
		return check{kind: kind, message: fmt.Sprintf("Maximum value is %v", rule.Value), ok: func(v any) bool {
			num, numeric := asFloat(v)
			if !numeric || isEmpty(v) {
				return true
			}
			return num <= bound
		}}, true
	case models.ValidationPattern:
		source, isString := rule.Value.(string)
		if !isString {
			return check{}, false
		}
		re, err := regexp.Compile("^(?:" + source + ")$")
		if err != nil {
			return check{}, false
		}
		return check{kind: kind, message: "Invalid format", ok: func(v any) bool {
			s, ok := v.(string)
			if !ok || s == "" {
				return true
			}
			return re.MatchString(s)
		}}, true
	case models.ValidationEmail:
		return check{kind: kind, message: "Invalid email address", ok: func(v any) bool {
			s, ok := v.(string)
			if !ok || s == "" {
				return true
			}
			return emailValidator.Var(s, "email") == nil
		}}, true
	}
	return check{}, false
}

// Controls returns the controls in display order.
func (f *Form) Controls() []*Control {
	out := make([]*Control, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.controls[id])
	}
	return out
}

// SetValue updates a control and marks it touched. Disabled and unknown
// controls ignore writes.
func (f *Form) SetValue(fieldID string, value any) {
	ctrl, ok := f.controls[fieldID]
	if !ok || ctrl.Disabled {
		return
	}
	ctrl.value = value
	ctrl.touched = true
}

// Value returns a control's current value.
func (f *Form) Value(fieldID string) any {
	if ctrl, ok := f.controls[fieldID]; ok {
		return ctrl.value
	}
	return nil
}

// Touched reports whether a control has been interacted with.
func (f *Form) Touched(fieldID string) bool {
	if ctrl, ok := f.controls[fieldID]; ok {
		return ctrl.touched
	}
	return false
}

// FieldError returns the highest-priority failing message for a control,
// or "" when it passes every check.
func (f *Form) FieldError(fieldID string) string {
	ctrl, ok := f.controls[fieldID]
	if !ok {
		return ""
	}
	for _, c := range ctrl.checks {
		if !c.ok(ctrl.value) {
			if c.message == "" {
				return "Field is invalid"
			}
			return c.message
		}
	}
	return ""
}

// Valid reports whether every control passes its checks.
func (f *Form) Valid() bool {
	for _, id := range f.order {
		if f.FieldError(id) != "" {
			return false
		}
	}
	return true
}

// Values snapshots the current data keyed by field id.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.order))
	for _, id := range f.order {
		out[id] = f.controls[id].value
	}
	return out
}

// Submit validates the whole form. An invalid form touches every control
// and surfaces a correction prompt without emitting. A valid form emits its
// values exactly once, confirms, and schedules the dashboard redirect.
func (f *Form) Submit() bool {
	if !f.Valid() {
		for _, ctrl := range f.controls {
			ctrl.touched = true
		}
		f.notifier.Show("Please fix the errors in the form", "Close", 3*time.Second)
		return false
	}
	if f.onSubmit != nil {
		f.onSubmit(f.Values())
	}
	f.notifier.Show(f.template.Name+" submitted successfully! Redirecting to dashboard...", "Close", 3*time.Second)
	navigator := f.navigator
	time.AfterFunc(f.delay, func() {
		navigator.NavigateTo("/dashboard", nil)
	})
	return true
}

// Cancel abandons the form and returns to the dashboard.
func (f *Form) Cancel() {
	f.navigator.NavigateTo("/dashboard", nil)
}

func isEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []any:
		return len(value) == 0
	case []string:
		return len(value) == 0
	default:
		return false
	}
}

func asInt(v any) (int, bool) {
	switch value := v.(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	case string:
		n, err := strconv.Atoi(value)
		return n, err == nil
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case string:
		n, err := strconv.ParseFloat(value, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
