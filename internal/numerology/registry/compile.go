package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"numerus/internal/numerology/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report stored field names (char_map, master_numbers) rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Policy defaults applied when a definition leaves a field out.
const (
	defaultKeepMaster      = true
	defaultReduceMaster    = false
	defaultIncludeYAsVowel = true
	defaultNormalization   = "ascii_fold"
	defaultReduceMethod    = "classic"
	defaultVowels          = "AEIOU"
)

// Compile validates def and converts it into an immutable RuleSet. Any
// structural problem is reported as *models.MalformedRuleSetError.
func Compile(id string, def *models.Definition) (*models.RuleSet, error) {
	if def == nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "definition is empty"}
	}
	if err := validate.Struct(def); err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: validationReason(err)}
	}

	charMap, err := compileCharMap(def.CharMap)
	if err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "char_map", Err: err}
	}

	vowels := []rune(defaultVowels)
	if len(def.Vowels) > 0 {
		vowels, err = compileLetters(def.Vowels)
		if err != nil {
			return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "vowels", Err: err}
		}
	}

	normalization, err := models.ParseNormalizationMode(orDefault(def.Normalization, defaultNormalization))
	if err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "normalization", Err: err}
	}
	reduction, err := models.ParseReductionMethod(orDefault(def.ReduceMethod, defaultReduceMethod))
	if err != nil {
		return nil, &models.MalformedRuleSetError{SystemID: id, Reason: "reduce_method", Err: err}
	}

	return models.NewRuleSet(models.RuleSetParams{
		ID:              id,
		Name:            strings.TrimSpace(def.Name),
		CharMap:         charMap,
		MasterNumbers:   def.MasterNumbers,
		KeepMaster:      boolOr(def.KeepMaster, defaultKeepMaster),
		ReduceMaster:    boolOr(def.ReduceMaster, defaultReduceMaster),
		Vowels:          vowels,
		IncludeYAsVowel: boolOr(def.IncludeYAsVowel, defaultIncludeYAsVowel),
		Normalization:   normalization,
		Reduction:       reduction,
	}), nil
}

// compileCharMap uppercases every key and requires each to be one rune.
// Keys that collide after uppercasing must agree on their value.
func compileCharMap(raw map[string]int) (map[rune]int, error) {
	out := make(map[rune]int, len(raw))
	for key, value := range raw {
		r, err := singleUpperRune(key)
		if err != nil {
			return nil, err
		}
		if value <= 0 {
			return nil, fmt.Errorf("value for %q must be positive, got %d", key, value)
		}
		if prev, ok := out[r]; ok && prev != value {
			return nil, fmt.Errorf("letter %q mapped to both %d and %d", string(r), prev, value)
		}
		out[r] = value
	}
	return out, nil
}

func compileLetters(raw []string) ([]rune, error) {
	out := make([]rune, 0, len(raw))
	for _, s := range raw {
		r, err := singleUpperRune(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func singleUpperRune(s string) (rune, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%q is not a letter", s)
	}
	return r, nil
}

func validationReason(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
