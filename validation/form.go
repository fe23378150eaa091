package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rpupo63/construction-site-backend/errs"
)

// DecodeForm fills target, a pointer to an input struct, from submitted form
// values keyed by the struct's json names. Numbers that do not parse are
// reported as field errors; checkboxes accept "on"; a list field given a
// single value is split on newlines. Keys that match no field are ignored.
func DecodeForm(target any, form map[string][]string) error {
	kinds := fieldKinds(target)
	values := make(map[string]any, len(form))
	fields := FieldErrors{}

	for name, vals := range form {
		kind, ok := kinds[name]
		if !ok || len(vals) == 0 {
			continue
		}
		switch kind {
		case reflect.Int, reflect.Int64:
			raw := strings.TrimSpace(vals[len(vals)-1])
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				fields[name] = Label(name) + " must be a whole number"
				continue
			}
			values[name] = n
		case reflect.Bool:
			// unchecked boxes are absent; hidden "false" inputs precede the box
			values[name] = checked(vals[len(vals)-1])
		case reflect.Slice:
			values[name] = vals
		default:
			values[name] = vals[0]
		}
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(splitLines),
		Result:           target,
	})
	if err != nil {
		return errs.NewInternalErrorWithCause("form decoder", err)
	}
	if err := decoder.Decode(values); err != nil {
		return errs.NewMalformedPayloadError("form", err)
	}
	return nil
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// splitLines turns a textarea holding one entry per line into a list.
func splitLines(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return strings.Split(strings.ReplaceAll(v, "\r\n", "\n"), "\n"), nil
	case []string:
		if len(v) == 1 {
			return strings.Split(strings.ReplaceAll(v[0], "\r\n", "\n"), "\n"), nil
		}
	}
	return data, nil
}

func fieldKinds(target any) map[string]reflect.Kind {
	kinds := map[string]reflect.Kind{}
	t := reflect.TypeOf(target)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return kinds
	}
	t = t.Elem()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		kinds[name] = f.Type.Kind()
	}
	return kinds
}
