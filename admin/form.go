package admin

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/construction-site-backend/validation"
)

// FieldKind selects the input element a form field renders as.
type FieldKind string

const (
	Text     FieldKind = "text"
	Textarea FieldKind = "textarea"
	Select   FieldKind = "select"
	Number   FieldKind = "number"
	Checkbox FieldKind = "checkbox"
	URL      FieldKind = "url"
	Email    FieldKind = "email"
	// Lines is a textarea holding one list entry per line.
	Lines FieldKind = "lines"
	File  FieldKind = "file"
)

// FormField describes one input of a resource form. Name is the input
// struct's json name; file fields are always named "file".
type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Options  []string
	Required bool
	Help     string
	// Accept restricts the file picker, e.g. "image/*".
	Accept string
}

func field(name string, kind FieldKind) FormField {
	return FormField{Name: name, Label: validation.Label(name), Kind: kind}
}

func (f FormField) required() FormField {
	f.Required = true
	return f
}

func (f FormField) options(opts []string) FormField {
	f.Options = opts
	return f
}

func (f FormField) help(text string) FormField {
	f.Help = text
	return f
}

func fileField(label, accept string) FormField {
	return FormField{Name: "file", Label: label, Kind: File, Accept: accept}
}

// FieldView is a FormField with its current value and error.
type FieldView struct {
	FormField
	Value   string
	Checked bool
	Error   string
}

// FormView is what the form template renders.
type FormView struct {
	Resource  string
	Singular  string
	ID        string
	UpdatedAt string
	Fields    []FieldView
	// Errors with no matching field, shown above the form.
	General []string
	IsEdit  bool
}

// NewFormView fills fields from input, the resource's input struct, and
// attaches fieldErrors by name.
func NewFormView(resource, singular string, fields []FormField, input any, fieldErrors map[string]string) FormView {
	values := map[string]any{}
	if raw, err := json.Marshal(input); err == nil {
		_ = json.Unmarshal(raw, &values)
	}

	v := FormView{Resource: resource, Singular: singular}
	known := map[string]bool{}
	for _, f := range fields {
		known[f.Name] = true
		fv := FieldView{FormField: f, Error: fieldErrors[f.Name]}
		switch val := values[f.Name].(type) {
		case bool:
			fv.Checked = val
		case []any:
			lines := make([]string, 0, len(val))
			for _, item := range val {
				lines = append(lines, fmt.Sprint(item))
			}
			fv.Value = strings.Join(lines, "\n")
		case float64:
			if val != 0 {
				fv.Value = fmt.Sprint(val)
			}
		case nil:
		default:
			fv.Value = fmt.Sprint(val)
		}
		v.Fields = append(v.Fields, fv)
	}
	for _, name := range validation.FieldErrors(fieldErrors).SortedFields() {
		if !known[name] {
			v.General = append(v.General, fieldErrors[name])
		}
	}
	return v
}

// ForRecord marks the form as editing an existing record.
func (v FormView) ForRecord(id string, updatedAt time.Time) FormView {
	v.ID = id
	v.UpdatedAt = updatedAt.UTC().Format(time.RFC3339Nano)
	v.IsEdit = true
	return v
}
