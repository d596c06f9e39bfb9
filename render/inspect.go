package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdfgenie/genie/models"
)

// Title returns the text of the first level-1 ATX heading, or "".
func Title(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// Images lists the src and alt of every <img> in a rendered fragment, in
// document order. Duplicates are kept.
func Images(fragment string) []models.Image {
	images := []models.Image{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return images
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			return
		}
		alt, _ := s.Attr("alt")
		images = append(images, models.Image{
			Src: src,
			Alt: strings.TrimSpace(alt),
		})
	})

	return images
}
