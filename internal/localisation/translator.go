// Package localisation renders structured message keys into human readable
// text in the language a client asked for.
package localisation

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
)

// DefaultLanguage is used whenever no better match is available.
const DefaultLanguage = "en"

// ErrUnknownLocale is returned when a catalog is supplied for a language that
// has no locale rules.
var ErrUnknownLocale = errors.New("no locale rules for language")

//go:embed languages/*.json
var embedded embed.FS

var localeRules = map[string]func() locales.Translator{
	"en": en.New,
	"es": es.New,
	"fr": fr.New,
}

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Catalogs maps a language tag to its key → template table. Templates use
// named placeholders such as {field}.
type Catalogs map[string]map[string]string

// Translator renders message keys. It is immutable after construction and
// safe for concurrent use.
type Translator struct {
	uni             *ut.UniversalTranslator
	params          map[string]map[string][]string
	defaultLanguage string
}

// New builds a Translator from in-memory catalogs.
func New(defaultLanguage string, catalogs Catalogs) (*Translator, error) {
	defaultRules, ok := localeRules[defaultLanguage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, defaultLanguage)
	}

	supported := make([]locales.Translator, 0, len(catalogs))
	for lang := range catalogs {
		rules, ok := localeRules[lang]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, lang)
		}
		supported = append(supported, rules())
	}

	t := &Translator{
		uni:             ut.New(defaultRules(), supported...),
		params:          make(map[string]map[string][]string, len(catalogs)),
		defaultLanguage: defaultLanguage,
	}

	for lang, catalog := range catalogs {
		trans, _ := t.uni.GetTranslator(lang)
		names := make(map[string][]string, len(catalog))
		for key, text := range catalog {
			positional, params := compileTemplate(text)
			if err := trans.Add(key, positional, false); err != nil {
				return nil, fmt.Errorf("adding %s/%s: %w", lang, key, err)
			}
			names[key] = params
		}
		t.params[lang] = names
	}

	return t, nil
}

// Load builds a Translator from every <lang>.json file at the root of fsys.
func Load(fsys fs.FS, defaultLanguage string) (*Translator, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}

	catalogs := make(Catalogs, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", name, err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", name, err)
		}
		catalogs[strings.TrimSuffix(path.Base(name), ".json")] = catalog
	}

	return New(defaultLanguage, catalogs)
}

// LoadEmbedded builds a Translator from the catalogs compiled into the binary.
func LoadEmbedded(defaultLanguage string) (*Translator, error) {
	sub, err := fs.Sub(embedded, "languages")
	if err != nil {
		return nil, err
	}
	return Load(sub, defaultLanguage)
}

// LoadDir builds a Translator from the catalogs in dir, or from the embedded
// catalogs when dir is empty.
func LoadDir(dir, defaultLanguage string) (*Translator, error) {
	if dir == "" {
		return LoadEmbedded(defaultLanguage)
	}
	return Load(os.DirFS(dir), defaultLanguage)
}

// DefaultLanguage returns the language used as the last resort.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLanguage
}

// Languages returns the languages that have a catalog, sorted.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.params))
	for lang := range t.params {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Has reports whether a catalog exists for lang.
func (t *Translator) Has(lang string) bool {
	_, ok := t.params[lang]
	return ok
}

// Translate renders key in lang, interpolating params. An unknown language
// falls back to the default one, and so does a key the language lacks. It
// never fails: a key unknown everywhere comes back as a tagged placeholder.
func (t *Translator) Translate(key, lang string, params map[string]string) string {
	if !t.Has(lang) {
		lang = t.defaultLanguage
	}
	catalog, ok := t.params[lang]
	if !ok {
		return "[MISSING_TRANSLATION:" + key + "]"
	}

	names, ok := catalog[key]
	if !ok {
		if lang != t.defaultLanguage {
			return t.Translate(key, t.defaultLanguage, params)
		}
		return "[MISSING_KEY:" + key + "]"
	}

	values := make([]string, len(names))
	for i, name := range names {
		v, ok := params[name]
		if !ok {
			v = "{" + name + "}"
		}
		values[i] = v
	}

	trans, _ := t.uni.GetTranslator(lang)
	text, err := trans.T(key, values...)
	if err != nil {
		return "[MISSING_KEY:" + key + "]"
	}
	return text
}

// compileTemplate rewrites named placeholders into the positional form
// universal-translator expects, returning the names in slot order.
func compileTemplate(text string) (string, []string) {
	var names []string
	positional := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		names = append(names, m[1:len(m)-1])
		return "{" + strconv.Itoa(len(names)-1) + "}"
	})
	return positional, names
}
