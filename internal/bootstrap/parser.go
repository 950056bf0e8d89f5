// Package bootstrap loads the initial club directory from the two
// upstream datasets: a structured clubs.json and a scraped HTML club
// listing.
package bootstrap

import (
	"encoding/json/v2"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ClubRecord is one club parsed from either dataset. Records from the
// HTML listing have no code yet; the importer generates one.
type ClubRecord struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ParseClubsJSON decodes the structured clubs.json dataset.
func ParseClubsJSON(r io.Reader) ([]ClubRecord, error) {
	var records []ClubRecord
	if err := json.UnmarshalRead(r, &records); err != nil {
		return nil, fmt.Errorf("decode clubs json: %w", err)
	}
	return records, nil
}

// ParseClubsHTML extracts club records from the scraped listing page.
// Each club is a div.box containing a strong.club-name, a span tag
// badge, and an em description.
func ParseClubsHTML(r io.Reader) ([]ClubRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse club listing html: %w", err)
	}

	var records []ClubRecord
	for _, box := range findAll(doc, "div", "box") {
		record := ClubRecord{
			Name:        textContent(findFirst(box, "strong", "club-name")),
			Description: textContent(findFirst(box, "em", "")),
			Tags:        []string{},
		}
		if tag := textContent(findFirst(box, "span", "tag")); tag != "" {
			record.Tags = append(record.Tags, tag)
		}
		if record.Name == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// findAll collects every element with the tag name carrying the class.
func findAll(n *html.Node, tag, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// findFirst returns the first element under n with the tag name and,
// when class is non-empty, the class.
func findFirst(n *html.Node, tag, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag && (class == "" || hasClass(c, class)) {
			return c
		}
		if found := findFirst(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// textContent concatenates the text nodes under n, trimmed.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
