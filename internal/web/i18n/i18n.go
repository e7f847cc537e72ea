package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// DefaultLanguage is the fallback used when none is configured.
const DefaultLanguage = "ja"

// ErrFallbackMissing is returned when the fallback locale has no bundle file.
var ErrFallbackMissing = errors.New("i18n: fallback locale not loaded")

// Bundle holds flat key/value translations per language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	matcher   language.Matcher
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded(fallback string, supported []string) (*Bundle, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: embedded locales: %w", err)
	}
	return Load(sub, fallback, supported)
}

// Load reads <lang>.yaml for every supported language from fsys. Missing files are
// tolerated for every language except the fallback.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = DefaultLanguage
	}
	if len(supported) == 0 {
		supported = []string{"ja", "en"}
	}

	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}

	// The matcher prefers the first tag on a tie, so the fallback goes first.
	ordered := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || l == fallback {
			continue
		}
		ordered = append(ordered, l)
	}

	for _, l := range ordered {
		raw, err := fs.ReadFile(fsys, l+".yaml")
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("%w: %s: %v", ErrFallbackMissing, l, err)
			}
			continue
		}
		var m map[string]string
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, l := range ordered {
		if _, ok := b.dict[l]; !ok {
			continue
		}
		tags = append(tags, language.Make(l))
		b.supported = append(b.supported, l)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

// Supported lists the loaded languages in alphabetical order.
func (b *Bundle) Supported() []string {
	out := append([]string(nil), b.supported...)
	sort.Strings(out)
	return out
}

// IsSupported reports whether lang has a loaded bundle.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dict[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// T returns the translation for key in lang, falling back to the default language and
// finally to the key itself.
func (b *Bundle) T(lang, key string) string {
	if b == nil {
		return key
	}
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Resolve picks the best supported language for an Accept-Language header value.
func (b *Bundle) Resolve(acceptLang string) string {
	acceptLang = strings.TrimSpace(acceptLang)
	if acceptLang == "" || len(b.supported) == 0 {
		return b.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, confidence := b.matcher.Match(prefs...)
	if confidence == language.No || idx < 0 || idx >= len(b.supported) {
		return b.fallback
	}
	return b.supported[idx]
}

// Localizer binds a bundle to a single language for template use.
type Localizer struct {
	bundle *Bundle
	lang   string
}

// For returns a Localizer for lang.
func (b *Bundle) For(lang string) Localizer {
	if b != nil && !b.IsSupported(lang) {
		lang = b.fallback
	}
	return Localizer{bundle: b, lang: lang}
}

// T translates key.
func (l Localizer) T(key string) string {
	return l.bundle.T(l.lang, key)
}

// Lang is the language the localizer renders.
func (l Localizer) Lang() string {
	switch {
	case l.lang != "":
		return l.lang
	case l.bundle != nil:
		return l.bundle.fallback
	default:
		return DefaultLanguage
	}
}
