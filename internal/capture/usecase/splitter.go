package usecase

import (
	"regexp"
	"strings"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	"thoughtfolio-backend/pkg/ai"
)

const (
	minSplitLength     = 15
	maxSplitItems      = 20
	splitterConfidence = 0.3
)

var (
	bulletLine  = regexp.MustCompile(`^\s*(?:[-*•▪◦‣]|\d{1,2}[.)])\s+(.*)$`)
	quotedLine  = regexp.MustCompile(`^["“'‘](.+?)["”'’]\s*(?:(?:-{1,2}|–|—|~)\s*(.+))?$`)
	headingLine = regexp.MustCompile(`^#{1,6}\s+`)
)

// SplitContent turns free text into capture items without a model. Bullets become
// one item each, other blocks one item per block. A trailing "- Author" on a quote
// becomes the item source.
func SplitContent(text string) []ai.CaptureItem {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var pieces []string
	for _, block := range strings.Split(text, "\n\n") {
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}

		if hasBullets(lines) {
			for _, l := range lines {
				if m := bulletLine.FindStringSubmatch(l); m != nil {
					pieces = append(pieces, m[1])
				} else if len(pieces) > 0 && !headingLine.MatchString(l) {
					pieces[len(pieces)-1] += " " + l
				}
			}
			continue
		}

		if strings.HasPrefix(lines[0], ">") {
			quote := make([]string, 0, len(lines))
			for _, l := range lines {
				quote = append(quote, strings.TrimSpace(strings.TrimLeft(l, ">")))
			}
			pieces = append(pieces, strings.Join(quote, " "))
			continue
		}

		if len(lines) == 1 && headingLine.MatchString(lines[0]) {
			continue
		}
		pieces = append(pieces, strings.Join(lines, " "))
	}

	seen := make(map[string]bool)
	items := make([]ai.CaptureItem, 0, len(pieces))
	for _, p := range pieces {
		item := ai.CaptureItem{
			Type:        "gem",
			ContextSlug: gemdomain.OtherContextSlug,
			Confidence:  splitterConfidence,
		}
		p = strings.Join(strings.Fields(p), " ")
		if m := quotedLine.FindStringSubmatch(p); m != nil {
			p = strings.TrimSpace(m[1])
			item.Source = strings.TrimSpace(m[2])
		}
		if len([]rune(p)) < minSplitLength {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true

		item.Content = p
		items = append(items, item)
		if len(items) == maxSplitItems {
			break
		}
	}
	return items
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, l := range strings.Split(block, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func hasBullets(lines []string) bool {
	for _, l := range lines {
		if bulletLine.MatchString(l) {
			return true
		}
	}
	return false
}
