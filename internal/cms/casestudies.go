package cms

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Elsevier11/bbt-consulting-sito/internal/view"
)

const (
	kindStandard = "standard"
	kindCTA      = "cta"
)

type caseStudyRecord struct {
	Kind            string   `yaml:"kind"`
	Sector          string   `yaml:"sector"`
	Title           string   `yaml:"title"`
	Impact          string   `yaml:"impact"`
	Description     string   `yaml:"description"`
	Icon            string   `yaml:"icon"`
	LongDescription string   `yaml:"long_description"`
	Features        []string `yaml:"features"`
	AppURL          string   `yaml:"app_url"`
	URL             string   `yaml:"url"`
}

// Catalog holds the case studies of every loaded language. It is immutable
// once loaded.
type Catalog struct {
	byLang   map[string][]view.CaseStudy
	fallback string
}

// LoadCatalog decodes case-studies/<lang>.yaml for each language in langs.
// The first language is the fallback and must exist. bookingURL is used for
// call-to-action entries without their own url.
func LoadCatalog(fsys fs.FS, langs []string, bookingURL string) (*Catalog, error) {
	if len(langs) == 0 {
		return nil, errors.New("cms: no catalogue languages")
	}
	cat := &Catalog{byLang: map[string][]view.CaseStudy{}, fallback: langs[0]}
	for i, lang := range langs {
		file := path.Join("case-studies", lang+".yaml")
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			if i > 0 && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("cms: read %s: %w", file, err)
		}
		cases, err := DecodeCaseStudies(data, bookingURL)
		if err != nil {
			return nil, fmt.Errorf("cms: %s: %w", file, err)
		}
		cat.byLang[lang] = cases
	}
	return cat, nil
}

// Cases returns the catalogue for lang, or the fallback language's.
func (c *Catalog) Cases(lang string) []view.CaseStudy {
	if cases, ok := c.byLang[lang]; ok {
		return cases
	}
	return c.byLang[c.fallback]
}

// DecodeCaseStudies parses a YAML list of case-study records into the
// view union, validating each record for its kind.
func DecodeCaseStudies(data []byte, bookingURL string) ([]view.CaseStudy, error) {
	var records []caseStudyRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode case studies: %w", err)
	}
	out := make([]view.CaseStudy, 0, len(records))
	ctas := 0
	for i, rec := range records {
		card := view.Card{
			Sector:      strings.TrimSpace(rec.Sector),
			Title:       strings.TrimSpace(rec.Title),
			Impact:      strings.TrimSpace(rec.Impact),
			Description: strings.TrimSpace(rec.Description),
			Icon:        strings.TrimSpace(rec.Icon),
		}
		if card.Title == "" {
			return nil, fmt.Errorf("case study %d: title is required", i)
		}
		switch strings.ToLower(strings.TrimSpace(rec.Kind)) {
		case kindStandard, "":
			if strings.TrimSpace(rec.LongDescription) == "" || len(rec.Features) == 0 {
				return nil, fmt.Errorf("case study %d (%s): long_description and features are required", i, card.Title)
			}
			out = append(out, view.StandardCase{
				Card:            card,
				LongDescription: strings.TrimSpace(rec.LongDescription),
				Features:        append([]string(nil), rec.Features...),
				AppURL:          cmp.Or(strings.TrimSpace(rec.AppURL), "#"),
			})
		case kindCTA:
			ctas++
			if ctas > 1 {
				return nil, fmt.Errorf("case study %d (%s): only one call-to-action entry is allowed", i, card.Title)
			}
			target := cmp.Or(strings.TrimSpace(rec.URL), bookingURL)
			if target == "" {
				return nil, fmt.Errorf("case study %d (%s): call-to-action needs a url", i, card.Title)
			}
			out = append(out, view.CallToAction{Card: card, URL: target})
		default:
			return nil, fmt.Errorf("case study %d (%s): unknown kind %q", i, card.Title, rec.Kind)
		}
	}
	return out, nil
}
