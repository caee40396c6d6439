package format

import (
	"regexp"
	"strings"
)

const (
	DefaultPropertyPath  = "/properties/"
	DefaultPropertyLabel = "View property"
)

const markdownLinkRE = `\[[^\]]*\]\([^)]*\)`

// LinkRewriter makes model output navigable inside the app: links to the
// site's own host become relative paths and bare listing paths become
// markdown links. Links to other hosts are left alone.
type LinkRewriter struct {
	absoluteRE *regexp.Regexp
	pathRE     *regexp.Regexp
	label      string
}

// NewLinkRewriter creates a rewriter for siteHost (e.g. "acme-realty.com").
// An empty host disables absolute link rewriting.
func NewLinkRewriter(siteHost, propertyPath string) *LinkRewriter {
	if propertyPath == "" {
		propertyPath = DefaultPropertyPath
	}
	if !strings.HasSuffix(propertyPath, "/") {
		propertyPath += "/"
	}

	r := &LinkRewriter{label: DefaultPropertyLabel}

	host := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(siteHost, "https://"), "http://"))
	host = strings.TrimPrefix(strings.TrimSuffix(host, "/"), "www.")
	if host != "" {
		// The host must end at a delimiter. The delimiter is captured and
		// written back since RE2 has no lookahead.
		r.absoluteRE = regexp.MustCompile(`(?i)https?://(?:www\.)?` + regexp.QuoteMeta(host) +
			`(?::\d+)?(/[^\s)\]]*)?([.,;!]?(?:[\s)\]:?#]|$))`)
	}
	r.pathRE = regexp.MustCompile(markdownLinkRE + `|` + regexp.QuoteMeta(propertyPath) + `[A-Za-z0-9\-_/]+`)
	return r
}

func (r *LinkRewriter) Rewrite(text string) string {
	if text == "" {
		return text
	}
	return r.linkifyPaths(r.Relative(text))
}

// Relative strips the site's own scheme and host from every link in text
func (r *LinkRewriter) Relative(text string) string {
	if r.absoluteRE == nil {
		return text
	}
	return r.absoluteRE.ReplaceAllStringFunc(text, func(m string) string {
		sub := r.absoluteRE.FindStringSubmatch(m)
		if len(sub) < 3 {
			return m
		}
		path := sub[1]
		if path == "" {
			path = "/"
		}
		return path + sub[2]
	})
}

func (r *LinkRewriter) linkifyPaths(text string) string {
	var out strings.Builder
	last := 0
	for _, loc := range r.pathRE.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		match := text[start:end]

		// already a markdown link, or glued to a preceding word
		if strings.HasPrefix(match, "[") || (start > 0 && !isBoundary(text[start-1])) {
			continue
		}

		out.WriteString(text[last:start])
		out.WriteString("[" + r.label + "](" + match + ")")
		last = end
	}
	if last == 0 {
		return text
	}
	out.WriteString(text[last:])
	return out.String()
}

func isBoundary(b byte) bool {
	switch b {
	case ' ', '\n', '\t', ':', ',', ';', '"', '\'':
		return true
	}
	return false
}
