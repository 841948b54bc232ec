package email

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags stripped wholesale, including their content.
var forbiddenTags = []string{"script", "iframe", "object", "embed", "form", "style"}

// SanitizeHTML strips active content from recruiter-supplied HTML before it
// is sent to candidates. Script-bearing tags are removed entirely, event
// handler attributes are dropped, and javascript: links are neutralized.
func SanitizeHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse email html: %w", err)
	}

	for _, tag := range forbiddenTags {
		doc.Find(tag).Remove()
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			kept := node.Attr[:0]
			for _, attr := range node.Attr {
				if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
					continue
				}
				kept = append(kept, attr)
			}
			node.Attr = kept
		}

		if href, ok := sel.Attr("href"); ok {
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:") {
				sel.SetAttr("href", "#")
			}
		}
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to render sanitized html: %w", err)
	}
	return strings.TrimSpace(body), nil
}
