package inkpress

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// EntryURL returns the absolute URL of an entry page.
func EntryURL(base string, index int64) string {
	return BuildURL(base, "entry", strconv.FormatInt(index, 10))
}

// NormalizeWebsite prefixes a scheme-less commenter website with http://.
// Empty input stays empty.
func NormalizeWebsite(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "http://" + site
	}
	return site
}

// JoinTags joins tags with ", " for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(cfg SiteConfig, e Entry) string {
	entryURL := EntryURL(cfg.URL, e.Index)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      e.Title,
		"datePublished": e.Published.Format("2006-01-02"),
		"dateModified":  e.Updated.Format("2006-01-02"),
		"url":           entryURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   entryURL,
		},
	}
	if e.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  e.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(e.Tags) > 0 {
		data["keywords"] = strings.Join(e.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
