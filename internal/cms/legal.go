package cms

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LegalPage is a rendered legal document in one language.
type LegalPage struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Version   string
	UpdatedAt time.Time
	// HTML is the sanitized body.
	HTML template.HTML
}

type legalFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	Version   string `yaml:"version"`
	UpdatedAt string `yaml:"updated_at"`
}

// Legal returns the legal page slug in lang. Languages without the page fall
// back to the client's fallback languages.
func (c *Client) Legal(ctx context.Context, slug, lang string) (LegalPage, error) {
	slug, ok := cleanSlug(slug)
	if !ok {
		return LegalPage{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	cacheKey := lang + "|" + slug
	if page, ok := c.cache.get(cacheKey); ok {
		return page, nil
	}

	page, err := c.fetchLegal(ctx, slug, lang)
	if err != nil {
		return LegalPage{}, err
	}
	c.cache.put(cacheKey, page)
	return page, nil
}

func (c *Client) fetchLegal(ctx context.Context, slug, lang string) (LegalPage, error) {
	if c.baseURL != "" {
		page, err := c.fetchLegalRemote(ctx, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cms remote fetch failed, using embedded content",
				zap.String("slug", slug), zap.String("lang", lang), zap.Error(err))
		}
	}
	return c.embeddedLegal(slug, lang)
}

func (c *Client) fetchLegalRemote(ctx context.Context, slug, lang string) (LegalPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", "legal", slug)
	if err != nil {
		return LegalPage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return LegalPage{}, err
	}
	if lang != "" {
		q := req.URL.Query()
		q.Set("lang", lang)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return LegalPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return LegalPage{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return LegalPage{}, fmt.Errorf("cms: legal remote status %d", resp.StatusCode)
	}

	var payload struct {
		Slug      string    `json:"slug"`
		Lang      string    `json:"lang"`
		Title     string    `json:"title"`
		Summary   string    `json:"summary"`
		Body      string    `json:"body"`
		Version   string    `json:"version"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return LegalPage{}, fmt.Errorf("cms: decode legal %s: %w", slug, err)
	}
	if strings.TrimSpace(payload.Body) == "" {
		return LegalPage{}, fmt.Errorf("cms: empty body for legal/%s", slug)
	}
	body, err := c.renderMarkdown(payload.Body)
	if err != nil {
		return LegalPage{}, err
	}
	return LegalPage{
		Slug:      cmp.Or(payload.Slug, slug),
		Lang:      cmp.Or(payload.Lang, lang),
		Title:     cmp.Or(payload.Title, prettifySlug(slug)),
		Summary:   payload.Summary,
		Version:   payload.Version,
		UpdatedAt: payload.UpdatedAt,
		HTML:      body,
	}, nil
}

func (c *Client) embeddedLegal(slug, lang string) (LegalPage, error) {
	if c.content == nil {
		return LegalPage{}, ErrNotFound
	}
	priority := []string{}
	if lang != "" {
		priority = append(priority, lang)
	}
	for _, l := range c.fallbacks {
		if l != lang {
			priority = append(priority, l)
		}
	}
	for _, candidate := range priority {
		page, err := c.readLegalMarkdown(slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			continue
		}
		// parse errors stop the search
		return LegalPage{}, err
	}
	return LegalPage{}, ErrNotFound
}

func (c *Client) readLegalMarkdown(slug, lang string) (LegalPage, error) {
	file := path.Join("legal", lang, slug+".md")
	data, err := fs.ReadFile(c.content, file)
	if err != nil {
		return LegalPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := legalFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return LegalPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, err := c.renderMarkdown(body)
	if err != nil {
		return LegalPage{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	return LegalPage{
		Slug:      slug,
		Lang:      cmp.Or(strings.TrimSpace(front.Lang), lang),
		Title:     cmp.Or(strings.TrimSpace(front.Title), prettifySlug(slug)),
		Summary:   strings.TrimSpace(front.Summary),
		Version:   strings.TrimSpace(front.Version),
		UpdatedAt: parseContentDate(front.UpdatedAt),
		HTML:      html,
	}, nil
}

func (c *Client) renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil
}
