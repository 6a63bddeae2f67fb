// Package catalog loads translated messages from YAML locale files and
// registers them with golang.org/x/text/message.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other locale falls back to.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores the messages for one locale.
type LocaleCatalog struct {
	Locale     string
	Namespaces []string
	Messages   map[string]string
}

// Bundle holds every loaded locale.
type Bundle struct {
	locales map[string]*LocaleCatalog
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the embedded bundle, already registered.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, file); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func parseCatalogFile(data []byte) (catalogFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return catalogFile{}, errors.New("empty catalog")
		}
		return catalogFile{}, err
	}
	if strings.TrimSpace(file.Locale) == "" {
		return catalogFile{}, errors.New("missing locale")
	}
	if strings.TrimSpace(file.Namespace) == "" {
		return catalogFile{}, errors.New("missing namespace")
	}
	if len(file.Messages) == 0 {
		return catalogFile{}, errors.New("missing messages")
	}
	return file, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	if dir := path.Base(path.Dir(p)); locale != dir {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, dir)
	}
	if base := strings.TrimSuffix(path.Base(p), path.Ext(p)); namespace != base {
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, namespace, base)
	}

	cat, ok := b.locales[locale]
	if !ok {
		cat = &LocaleCatalog{Locale: locale, Messages: map[string]string{}}
		b.locales[locale] = cat
	}
	for _, existing := range cat.Namespaces {
		if existing == namespace {
			return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
		}
	}
	cat.Namespaces = append(cat.Namespaces, namespace)

	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with %q", p, key, namespace+".")
		}
		if _, exists := cat.Messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		cat.Messages[key] = value
	}
	return nil
}

// Register publishes every message to the x/text default catalog. Regional
// locales are also registered under their base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		messages := b.locales[locale].Messages
		for _, key := range sortedKeys(messages) {
			for _, t := range tags {
				if err := message.SetString(t, key, messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns one message, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if cat, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if value, ok := cat.Messages[key]; ok {
			return value, true
		}
	}
	if cat, ok := b.locales[BaseLocale]; ok {
		value, ok := cat.Messages[key]
		return value, ok
	}
	return "", false
}

// MissingKeys lists base-locale keys that locale does not translate.
func (b *Bundle) MissingKeys(locale string) []string {
	if b == nil {
		return nil
	}
	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil
	}
	cat := b.locales[strings.TrimSpace(locale)]
	var missing []string
	for _, key := range sortedKeys(base.Messages) {
		if cat == nil {
			missing = append(missing, key)
			continue
		}
		if _, ok := cat.Messages[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
