package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// PostalAddress is the registered office of an organization.
type PostalAddress struct {
	Street     string
	PostalCode string
	Locality   string
	Region     string
	Country    string
}

// Organization returns an Organization schema.
func Organization(name, legalName, url, logoURL, vatID string, addr *PostalAddress) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if legalName != "" {
		m["legalName"] = legalName
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if vatID != "" {
		m["vatID"] = vatID
	}
	if addr != nil {
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   addr.Street,
			"postalCode":      addr.PostalCode,
			"addressLocality": addr.Locality,
			"addressRegion":   addr.Region,
			"addressCountry":  addr.Country,
		}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
