// Package i18n loads the zh/en label catalogs and applies them to the page.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"LegacyGuardians/internal/model"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every supported locale.
type Catalog struct {
	builder *catalog.Builder
	keys    []string
}

// Tag maps a locale to its language tag.
func Tag(l model.Locale) language.Tag {
	if l == model.LocaleEN {
		return language.English
	}
	return language.Chinese
}

// Load reads the catalogs embedded in the binary.
func Load() (*Catalog, error) {
	return LoadFS(embeddedLocales)
}

// LoadFS reads locales/<locale>.yaml for every supported locale from fsys.
// Every locale must define exactly the same keys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(Tag(model.DefaultLocale)))
	var reference map[string]string
	var referenceLocale model.Locale

	for _, locale := range []model.Locale{model.LocaleZH, model.LocaleEN} {
		name := path.Join("locales", string(locale)+".yaml")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}
		if file.Locale != string(locale) {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", name, file.Locale)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: no messages", name)
		}

		if reference == nil {
			reference, referenceLocale = file.Messages, locale
		} else if err := sameKeys(reference, file.Messages); err != nil {
			return nil, fmt.Errorf("catalog %s differs from %s: %w", name, referenceLocale, err)
		}

		tag := Tag(locale)
		for key, msg := range file.Messages {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", name, key, err)
			}
		}
	}

	keys := make([]string, 0, len(reference))
	for key := range reference {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Catalog{builder: builder, keys: keys}, nil
}

// Printer returns a printer that resolves keys in the given locale.
func (c *Catalog) Printer(l model.Locale) *message.Printer {
	return message.NewPrinter(Tag(l), message.Catalog(c.builder))
}

// Keys returns every message key, sorted.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

func sameKeys(want, got map[string]string) error {
	var missing, extra []string
	for key := range want {
		if _, ok := got[key]; !ok {
			missing = append(missing, key)
		}
	}
	for key := range got {
		if _, ok := want[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return fmt.Errorf("missing [%s] extra [%s]", strings.Join(missing, " "), strings.Join(extra, " "))
}
