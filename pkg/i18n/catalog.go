// Package i18n holds the message catalogs of everything shown to the player.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is used whenever a requested locale is unknown.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

type Catalog struct {
	builder *catalog.Builder
	locales []language.Tag
}

func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedFS)
}

func MustLoadEmbedded() *Catalog {
	result, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return result
}

func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("cannot glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	base := language.Make(BaseLocale)
	result := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(base)),
	}
	hasBase := false

	for _, path := range paths {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(b, &file); err != nil {
			return nil, fmt.Errorf("cannot parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: illegal locale %q: %w", path, file.Locale, err)
		}
		for key, value := range file.Messages {
			if err := result.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("catalog %s: cannot register %q: %w", path, key, err)
			}
		}
		if tag == base {
			hasBase = true
		}
		result.locales = append(result.locales, tag)
	}

	if !hasBase {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	return result, nil
}

// Locales returns all available locales.
func (this *Catalog) Locales() []string {
	result := make([]string, len(this.locales))
	for i, v := range this.locales {
		result[i] = v.String()
	}
	return result
}

// Printer returns a printer for the best matching locale. An empty or unknown
// locale results in BaseLocale.
func (this *Catalog) Printer(locale string) *Printer {
	tag := language.Make(BaseLocale)
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		matcher := language.NewMatcher(this.locales)
		if _, index, confidence := matcher.Match(language.Make(trimmed)); confidence != language.No {
			tag = this.locales[index]
		}
	}
	return &Printer{
		Tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(this.builder)),
	}
}

type Printer struct {
	Tag     language.Tag
	printer *message.Printer
}

func (this *Printer) Sprintf(key string, args ...any) string {
	return this.printer.Sprintf(key, args...)
}
