package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/pkg/nav"
	"github.com/noah-isme/form-builder/pkg/notify"
)

type notifierStub struct {
	messages []string
}

func (n *notifierStub) Show(message, actionLabel string, duration time.Duration) {
	n.messages = append(n.messages, message)
}

func singleFieldTemplate(field models.FormField) models.FormTemplate {
	return models.FormTemplate{ID: "template-1", Name: "Contact Form", Fields: []models.FormField{field}}
}

func TestCompileInitialValues(t *testing.T) {
	template := models.FormTemplate{
		ID:   "template-1",
		Name: "Prefs",
		Fields: []models.FormField{
			{ID: "f1", Type: models.FieldTypeText, DefaultValue: "hello"},
			{ID: "f2", Type: models.FieldTypeText, DefaultValue: "default"},
			{ID: "f3", Type: models.FieldTypeText},
		},
	}

	form := Compile(template, map[string]any{"f2": "provided"})

	assert.Equal(t, "hello", form.Value("f1"))
	assert.Equal(t, "provided", form.Value("f2"))
	assert.Nil(t, form.Value("f3"))
}

func TestCompileDisabledControls(t *testing.T) {
	template := models.FormTemplate{
		ID:   "template-1",
		Name: "Prefs",
		Fields: []models.FormField{
			{ID: "f1", Type: models.FieldTypeText},
			{ID: "f2", Type: models.FieldTypeText, Disabled: true},
		},
	}

	form := Compile(template, nil)
	controls := form.Controls()
	assert.False(t, controls[0].Disabled)
	assert.True(t, controls[1].Disabled)

	readonly := Compile(template, nil, ReadOnly())
	for _, ctrl := range readonly.Controls() {
		assert.True(t, ctrl.Disabled)
	}

	// writes to a disabled control are dropped
	form.SetValue("f2", "nope")
	assert.Nil(t, form.Value("f2"))
}

func TestRequiredValidation(t *testing.T) {
	form := Compile(singleFieldTemplate(models.FormField{ID: "f1", Type: models.FieldTypeText, Required: true}), nil)

	assert.Equal(t, "This field is required", form.FieldError("f1"))
	assert.False(t, form.Valid())

	form.SetValue("f1", "value")
	assert.Empty(t, form.FieldError("f1"))
	assert.True(t, form.Valid())
}

func TestRequiredComesFromFlagNotRuleList(t *testing.T) {
	form := Compile(singleFieldTemplate(models.FormField{
		ID:         "f1",
		Type:       models.FieldTypeText,
		Validation: []models.ValidationRule{{Type: models.ValidationRequired}},
	}), nil)

	assert.Empty(t, form.FieldError("f1"))
	assert.True(t, form.Valid())
}

func TestMinLengthValidation(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationMinLength, Value: 5},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	// empty values pass non-required checks
	assert.Empty(t, form.FieldError("f1"))

	form.SetValue("f1", "abc")
	assert.Equal(t, "Minimum length is 5 characters", form.FieldError("f1"))

	form.SetValue("f1", "abcdef")
	assert.Empty(t, form.FieldError("f1"))
}

func TestMaxLengthValidation(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationMaxLength, Value: 3},
		},
	}
	form := Compile(singleFieldTemplate(field), map[string]any{"f1": "toolong"})

	assert.Equal(t, "Maximum length is 3 characters", form.FieldError("f1"))
}

func TestNumericBoundsValidation(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationMin, Value: 18},
			{Type: models.ValidationMax, Value: 65},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	form.SetValue("f1", 10)
	assert.Equal(t, "Minimum value is 18", form.FieldError("f1"))

	form.SetValue("f1", 99)
	assert.Equal(t, "Maximum value is 65", form.FieldError("f1"))

	form.SetValue("f1", 40)
	assert.Empty(t, form.FieldError("f1"))

	// non-numeric values skip the bound checks
	form.SetValue("f1", "not a number at all")
	assert.Empty(t, form.FieldError("f1"))
}

func TestPatternValidation(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationPattern, Value: "[0-9]{4}"},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	form.SetValue("f1", "12345")
	assert.Equal(t, "Invalid format", form.FieldError("f1"))

	form.SetValue("f1", "1234")
	assert.Empty(t, form.FieldError("f1"))
}

func TestEmailValidation(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationEmail},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	form.SetValue("f1", "not-an-email")
	assert.Equal(t, "Invalid email address", form.FieldError("f1"))

	form.SetValue("f1", "person@example.com")
	assert.Empty(t, form.FieldError("f1"))
}

func TestUnknownRuleIsIgnored(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationType("custom"), Value: "whatever"},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	form.SetValue("f1", "anything")
	assert.Empty(t, form.FieldError("f1"))
	assert.True(t, form.Valid())
}

func TestLastRuleOfACategoryWins(t *testing.T) {
	field := models.FormField{
		ID:   "f1",
		Type: models.FieldTypeText,
		Validation: []models.ValidationRule{
			{Type: models.ValidationMinLength, Value: 10},
			{Type: models.ValidationMinLength, Value: 3},
		},
	}
	form := Compile(singleFieldTemplate(field), map[string]any{"f1": "abcd"})

	// four characters satisfy the later rule even though the earlier one asks for ten
	assert.Empty(t, form.FieldError("f1"))
}

func TestErrorMessagePriority(t *testing.T) {
	field := models.FormField{
		ID:       "f1",
		Type:     models.FieldTypeText,
		Required: true,
		Validation: []models.ValidationRule{
			{Type: models.ValidationEmail},
			{Type: models.ValidationMinLength, Value: 5},
		},
	}
	form := Compile(singleFieldTemplate(field), nil)

	// empty: required outranks everything
	assert.Equal(t, "This field is required", form.FieldError("f1"))

	// short and not an email: minlength outranks email
	form.SetValue("f1", "ab")
	assert.Equal(t, "Minimum length is 5 characters", form.FieldError("f1"))

	// long enough but still not an email
	form.SetValue("f1", "abcdefgh")
	assert.Equal(t, "Invalid email address", form.FieldError("f1"))
}

func TestSubmitInvalidFormTouchesAllAndNotifies(t *testing.T) {
	notifier := &notifierStub{}
	template := models.FormTemplate{
		ID:   "template-1",
		Name: "Contact Form",
		Fields: []models.FormField{
			{ID: "f1", Type: models.FieldTypeText, Required: true},
			{ID: "f2", Type: models.FieldTypeText, Required: true},
		},
	}
	submitted := 0
	form := Compile(template, nil,
		WithNotifier(notify.Func(notifier.Show)),
		WithOnSubmit(func(map[string]any) { submitted++ }),
	)

	ok := form.Submit()

	assert.False(t, ok)
	assert.Zero(t, submitted)
	assert.True(t, form.Touched("f1"))
	assert.True(t, form.Touched("f2"))
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Please fix the errors in the form", notifier.messages[0])
}

func TestSubmitValidFormEmitsOnceAndRedirects(t *testing.T) {
	notifier := &notifierStub{}
	recorder := nav.NewRecorder()
	var payloads []map[string]any

	field := models.FormField{ID: "f1", Type: models.FieldTypeText, Required: true}
	form := Compile(singleFieldTemplate(field), map[string]any{"f1": "Ada"},
		WithNotifier(notify.Func(notifier.Show)),
		WithNavigator(recorder),
		WithRedirectDelay(10*time.Millisecond),
		WithOnSubmit(func(data map[string]any) { payloads = append(payloads, data) }),
	)

	ok := form.Submit()

	require.True(t, ok)
	require.Len(t, payloads, 1)
	assert.Equal(t, "Ada", payloads[0]["f1"])
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Contact Form submitted successfully! Redirecting to dashboard...", notifier.messages[0])

	// redirect happens only after the configured pause
	assert.Empty(t, recorder.Visits())
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(recorder.Visits()) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	visits := recorder.Visits()
	require.Len(t, visits, 1)
	assert.Equal(t, "/dashboard", visits[0].Path)
}

func TestCancelNavigatesToDashboard(t *testing.T) {
	recorder := nav.NewRecorder()
	field := models.FormField{ID: "f1", Type: models.FieldTypeText}
	form := Compile(singleFieldTemplate(field), nil, WithNavigator(recorder))

	form.Cancel()

	visits := recorder.Visits()
	require.Len(t, visits, 1)
	assert.Equal(t, "/dashboard", visits[0].Path)
}

func TestFallbackErrorMessage(t *testing.T) {
	// a rule with no message of its own falls back to the generic string
	form := &Form{
		controls: map[string]*Control{
			"f1": {checks: []check{{kind: models.ValidationRequired, ok: func(any) bool { return false }}}},
		},
		order: []string{"f1"},
	}
	assert.Equal(t, "Field is invalid", form.FieldError("f1"))
}
