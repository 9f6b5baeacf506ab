package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"panda-server/internal/models"
)

// DateLayout is the only accepted calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ReadableDateFormat is DateLayout as shown to people.
const ReadableDateFormat = "YYYY-MM-DD"

var (
	nhsNumberPattern = FullMatch(`\d{10}`)
	durationPattern  = FullMatch(`\d+[hm]`)

	// https://ideal-postcodes.co.uk/guides/uk-postcode-format
	ukPostcodePattern = regexp.MustCompile(`(?i)^([A-Z][A-HJ-Y]?\d[A-Z\d]? ?\d[A-Z]{2}|GIR ?0A{2})$`)
)

// FullMatch compiles pattern so that it only matches an entire string.
func FullMatch(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

// RequiredFields emits missing_required_field for every field that is absent
// or falsy in record, in the order given.
func RequiredFields(record Record, fields ...models.Field) []models.Message {
	var errs []models.Message
	for _, field := range fields {
		if record.Missing(field) {
			errs = append(errs, models.FieldMessage(models.KeyMissingRequiredField, field))
		}
	}
	return errs
}

// RegexFullMatch fails when value, coerced to a string, is not entirely
// matched by re. Build re with FullMatch.
func RegexFullMatch(value interface{}, re *regexp.Regexp, key models.MessageKey, params map[string]string) []models.Message {
	if !re.MatchString(coerceString(value)) {
		return []models.Message{{Key: key, Params: params}}
	}
	return nil
}

// MinLength fails when value is not a string or its trimmed length is below n.
func MinLength(value interface{}, n int, key models.MessageKey, params map[string]string) []models.Message {
	s, ok := value.(string)
	if !ok || utf8.RuneCountInString(strings.TrimSpace(s)) < n {
		return []models.Message{{Key: key, Params: params}}
	}
	return nil
}

// DateFormat parses value with layout. A parse failure emits formatKey. When
// futureKey is set and the date falls after now's calendar day, futureKey is
// emitted instead.
func DateFormat(value interface{}, layout string, formatKey, futureKey models.MessageKey, params map[string]string, now time.Time) []models.Message {
	s, ok := value.(string)
	if !ok {
		return []models.Message{{Key: formatKey, Params: params}}
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return []models.Message{{Key: formatKey, Params: params}}
	}
	if futureKey != "" {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		if day.After(today) {
			return []models.Message{{Key: futureKey, Params: params}}
		}
	}
	return nil
}

// Postcode checks value against the UK postcode format, ignoring case and
// surrounding whitespace. Non-string values are always invalid.
func Postcode(value interface{}, params map[string]string) []models.Message {
	s, ok := value.(string)
	if !ok || !ukPostcodePattern.MatchString(strings.TrimSpace(s)) {
		return []models.Message{{Key: models.KeyInvalidUKPostcode, Params: params}}
	}
	return nil
}

func fieldParams(field models.Field, kv ...string) map[string]string {
	params := map[string]string{"field": string(field)}
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = kv[i+1]
	}
	return params
}
