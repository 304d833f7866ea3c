package services

import (
	"html/template"
	"regexp"
)

// ExcerptLength is the number of characters shown on a card.
const ExcerptLength = 200

// Highlight wraps every case-insensitive occurrence of each term in <mark>.
// Terms are applied one after another, each over the previous output, so a
// term that matches inside an earlier marker (or the marker text itself) gets
// marked again.
func Highlight(text string, terms []string) template.HTML {
	for _, term := range terms {
		if term == "" {
			continue
		}
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
		text = re.ReplaceAllString(text, "<mark>$0</mark>")
	}
	return template.HTML(text)
}

// Excerpt returns the first ExcerptLength characters of text.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= ExcerptLength {
		return text
	}
	return string(runes[:ExcerptLength])
}

// Annotate fills the excerpt and full description of a product view. With no
// terms both are the raw text.
func Annotate(description string, terms []string) (excerpt, full template.HTML) {
	short := Excerpt(description)
	if len(terms) == 0 {
		return template.HTML(short), template.HTML(description)
	}
	return Highlight(short, terms), Highlight(description, terms)
}
