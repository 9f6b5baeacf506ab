package localisation

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

type preference struct {
	lang    string
	quality float64
}

// DetectLanguage picks the best available language for an Accept-Language
// header such as "en-US,en;q=0.9,fr;q=0.8". Region subtags are ignored,
// entries without a weight count as 1.0, and ties keep header order.
func (t *Translator) DetectLanguage(header string) string {
	prefs := parseAcceptLanguage(header)
	for _, p := range prefs {
		if t.Has(p.lang) {
			return p.lang
		}
	}
	return t.defaultLanguage
}

func parseAcceptLanguage(header string) []preference {
	var prefs []preference
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tag, quality := part, 1.0
		if i := strings.IndexByte(part, ';'); i >= 0 {
			tag = strings.TrimSpace(part[:i])
			for _, param := range strings.Split(part[i+1:], ";") {
				param = strings.TrimSpace(param)
				if !strings.HasPrefix(param, "q=") {
					continue
				}
				if q, err := strconv.ParseFloat(param[2:], 64); err == nil {
					quality = q
				}
			}
		}

		prefs = append(prefs, preference{lang: primaryLanguage(tag), quality: quality})
	}

	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].quality > prefs[j].quality
	})
	return prefs
}

// primaryLanguage strips everything but the language subtag: en-US → en.
func primaryLanguage(tag string) string {
	if parsed, err := language.Parse(tag); err == nil {
		if base, confidence := parsed.Base(); confidence != language.No {
			return base.String()
		}
	}
	return strings.ToLower(strings.SplitN(tag, "-", 2)[0])
}
