package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
)

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

// Result is the outcome of validating one input.
type Result struct {
	Valid  bool
	Data   any
	Errors FieldErrors
}

// Err converts an invalid result into a 422 ApiErr, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return errs.NewValidationError(r.Errors)
}

var V = validator.New()

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// enums are the closed sets referenced by the `enum=<name>` tag.
var enums = map[string][]string{
	"article_category": models.ArticleCategories,
	"industry":         models.Industries,
	"resource_type":    models.ResourceTypes,
	"department":       models.Departments,
	"partner_category": models.PartnerCategories,
	"social_platform":  models.SocialPlatforms,
}

func init() {
	V.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for an empty tag or a nil func
	_ = V.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		for _, allowed := range enums[fl.Param()] {
			if fl.Field().String() == allowed {
				return true
			}
		}
		return false
	})
	_ = V.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

var registry = map[string]func() any{
	models.ResourceArticles:     func() any { return &ArticleInput{} },
	models.ResourceProjects:     func() any { return &ProjectInput{} },
	models.ResourceCaseStudies:  func() any { return &CaseStudyInput{} },
	models.ResourceResources:    func() any { return &ResourceInput{} },
	models.ResourceTeamMembers:  func() any { return &TeamMemberInput{} },
	models.ResourceTestimonials: func() any { return &TestimonialInput{} },
	models.ResourcePartnerLogos: func() any { return &PartnerLogoInput{} },
	models.ResourceSocialLinks:  func() any { return &SocialLinkInput{} },
	"contact":                   func() any { return &ContactInput{} },
	"login":                     func() any { return &LoginInput{} },
	"project_image":             func() any { return &ProjectImageInput{} },
}

// NewInput returns an empty input struct for resourceType.
func NewInput(resourceType string) (any, error) {
	factory, ok := registry[resourceType]
	if !ok {
		return nil, errs.NewUnknownResourceError(resourceType)
	}
	return factory(), nil
}

// Validate checks input against the schema registered for resourceType.
// input is either that resource's input struct (pointer) or a generic map as
// decoded from a JSON body or form; maps are converted first. String fields
// are trimmed before the rules run. Data holds the typed, trimmed input.
func Validate(resourceType string, input any) (Result, error) {
	target, err := NewInput(resourceType)
	if err != nil {
		return Result{}, err
	}

	switch v := input.(type) {
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return Result{}, errs.NewMalformedPayloadError(resourceType, err)
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return Result{}, errs.NewMalformedPayloadError(resourceType, err)
		}
	default:
		if reflect.TypeOf(input) != reflect.TypeOf(target) {
			return Result{}, errs.NewBadRequestError(fmt.Sprintf("%T is not a %s input", input, resourceType))
		}
		target = input
	}

	trimStrings(target)
	return Struct(target), nil
}

// Struct validates an already typed input struct.
func Struct(input any) Result {
	err := V.Struct(input)
	if err == nil {
		return Result{Valid: true, Data: input}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: FieldErrors{"_": err.Error()}}
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		name := topLevelField(fe)
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = message(fe)
	}
	return Result{Errors: fields}
}

// topLevelField strips the struct name and any slice index from the namespace:
// "ProjectInput.services[2]" -> "services".
func topLevelField(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func message(fe validator.FieldError) string {
	label := Label(topLevelField(fe))
	numeric := fe.Kind() >= reflect.Int && fe.Kind() <= reflect.Float64

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s allows at most %s entries", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "enum":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(enums[fe.Param()], ", "))
	case "url":
		return label + " must be a valid URL"
	case "email":
		return label + " must be a valid email address"
	case "slug":
		return label + " may only contain lowercase letters, digits and single dashes"
	}
	return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
}

// Label turns a JSON field name into the label shown next to form inputs.
func Label(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		switch w {
		case "url":
			words[i] = "URL"
		case "id":
			words[i] = "ID"
		default:
			if i == 0 && w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}

// SortedFields returns the field names of fe in a stable order.
func (fe FieldErrors) SortedFields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func trimStrings(input any) {
	v := reflect.ValueOf(input)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			kept := reflect.MakeSlice(f.Type(), 0, f.Len())
			for j := 0; j < f.Len(); j++ {
				s := strings.TrimSpace(f.Index(j).String())
				if s != "" {
					kept = reflect.Append(kept, reflect.ValueOf(s))
				}
			}
			f.Set(kept)
		}
	}
}
