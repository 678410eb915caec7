// Package builder implements the design-time field list editor: palette
// insertion, selection, patching, removal and drag reordering, with the
// contiguous 1-based order invariant maintained after every mutation.
package builder

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/store"
)

// Dispatcher receives the builder's mutations as store actions so the
// template under edit stays in sync with the state container.
type Dispatcher interface {
	Dispatch(action store.Action)
}

// ChangeFunc observes the full field list after every mutation.
type ChangeFunc func(fields []models.FormField)

// Builder edits a working copy of a template's field list. It is not safe
// for concurrent use; the editing surface is single-threaded.
type Builder struct {
	fields     []models.FormField
	selectedID string
	dispatcher Dispatcher
	onChange   ChangeFunc
	logger     *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithDispatcher forwards every mutation to the store.
func WithDispatcher(d Dispatcher) Option {
	return func(b *Builder) { b.dispatcher = d }
}

// WithOnChange registers the synchronous change observer.
func WithOnChange(fn ChangeFunc) Option {
	return func(b *Builder) { b.onChange = fn }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// New starts an editing session seeded with the given fields. The seed is
// deep-copied so the caller's slice is never mutated.
func New(seed []models.FormField, opts ...Option) *Builder {
	b := &Builder{fields: models.CloneFields(seed), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.renumber()
	return b
}

// Fields returns a deep copy of the current field list.
func (b *Builder) Fields() []models.FormField {
	return models.CloneFields(b.fields)
}

// Selected returns the id of the selected field, or "" when none is.
func (b *Builder) Selected() string {
	return b.selectedID
}

// Select marks a field as the editing target. Unknown ids clear selection.
func (b *Builder) Select(id string) {
	for _, f := range b.fields {
		if f.ID == id {
			b.selectedID = id
			return
		}
	}
	b.selectedID = ""
}

// Deselect clears the editing target.
func (b *Builder) Deselect() {
	b.selectedID = ""
}

// CreateField materialises a palette entry into a concrete field without
// adding it to the list: fresh id, type-specific default label, derived
// name, not required, positioned after the current last field. Option-backed
// types receive three placeholder options.
func (b *Builder) CreateField(fieldType models.FieldType) models.FormField {
	id := uuid.New().String()
	label := defaultLabel(fieldType)
	field := models.FormField{
		ID:       id,
		Type:     fieldType,
		Label:    label,
		Name:     fieldName(label, id),
		Required: false,
		Order:    len(b.fields) + 1,
	}
	if fieldType.NeedsOptions() {
		field.Options = defaultOptions()
	}
	return field
}

// AddField creates a field of the given type and appends it.
func (b *Builder) AddField(fieldType models.FieldType) models.FormField {
	field := b.CreateField(fieldType)
	b.fields = append(b.fields, field.Clone())
	b.renumber()
	b.emit()
	b.dispatch(store.AddField{Meta: store.NewMeta(), Field: field})
	return field
}

// InsertFromPalette creates a field and places it at the given index.
// Out-of-range indexes append.
func (b *Builder) InsertFromPalette(fieldType models.FieldType, at int) models.FormField {
	field := b.CreateField(fieldType)
	if at < 0 || at >= len(b.fields) {
		b.fields = append(b.fields, field.Clone())
	} else {
		b.fields = append(b.fields[:at], append([]models.FormField{field.Clone()}, b.fields[at:]...)...)
	}
	b.renumber()
	b.emit()
	b.dispatch(store.ReorderFields{Meta: store.NewMeta(), Fields: b.Fields()})
	return field
}

// UpdateField patches a field in place. Unknown ids are ignored.
func (b *Builder) UpdateField(id string, patch models.FieldPatch) {
	for i := range b.fields {
		if b.fields[i].ID != id {
			continue
		}
		b.fields[i] = patch.Apply(b.fields[i])
		b.emit()
		b.dispatch(store.UpdateField{Meta: store.NewMeta(), ID: id, Updates: patch})
		return
	}
}

// RemoveField drops a field and renumbers the remainder. Removing the
// selected field clears selection.
func (b *Builder) RemoveField(id string) {
	for i := range b.fields {
		if b.fields[i].ID != id {
			continue
		}
		b.fields = append(b.fields[:i], b.fields[i+1:]...)
		if b.selectedID == id {
			b.selectedID = ""
		}
		b.renumber()
		b.emit()
		b.dispatch(store.RemoveField{Meta: store.NewMeta(), ID: id})
		return
	}
}

// Reorder moves the field at from before the field currently at to, then
// renumbers. Equal or out-of-range indexes are a no-op.
func (b *Builder) Reorder(from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(b.fields) || to >= len(b.fields) {
		return
	}
	moved := b.fields[from]
	rest := append(b.fields[:from], b.fields[from+1:]...)
	b.fields = append(rest[:to], append([]models.FormField{moved}, rest[to:]...)...)
	b.renumber()
	b.emit()
	b.dispatch(store.ReorderFields{Meta: store.NewMeta(), Fields: b.Fields()})
}

func (b *Builder) renumber() {
	for i := range b.fields {
		b.fields[i].Order = i + 1
	}
}

func (b *Builder) emit() {
	if b.onChange != nil {
		b.onChange(b.Fields())
	}
}

func (b *Builder) dispatch(action store.Action) {
	if b.dispatcher != nil {
		b.dispatcher.Dispatch(action)
	}
}

func defaultLabel(t models.FieldType) string {
	switch t {
	case models.FieldTypeText:
		return "Text Field"
	case models.FieldTypeTextarea:
		return "Text Area"
	case models.FieldTypeSelect:
		return "Dropdown"
	case models.FieldTypeCheckbox:
		return "Checkbox"
	case models.FieldTypeRadio:
		return "Radio Group"
	case models.FieldTypeDate:
		return "Date"
	case models.FieldTypeButton:
		return "Button"
	case models.FieldTypeCheckboxGroup:
		return "Checkbox Group"
	default:
		return "New Field"
	}
}

// fieldName derives a machine name from the label plus an id fragment to
// keep names unique across fields with identical labels.
func fieldName(label, id string) string {
	snake := strings.ToLower(strings.ReplaceAll(label, " ", "_"))
	fragment := id
	if len(fragment) > 4 {
		fragment = fragment[:4]
	}
	return snake + "_" + fragment
}

func defaultOptions() []models.Option {
	return []models.Option{
		{Value: "option1", Label: "Option 1"},
		{Value: "option2", Label: "Option 2"},
		{Value: "option3", Label: "Option 3"},
	}
}
