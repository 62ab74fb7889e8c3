package fuzzy

import (
	"strings"
	"unicode"
)

// LevenshteinDistance calculates the edit distance between two strings
// (single-character insertions, deletions or substitutions)
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(Normalize(s1))
	r2 := []rune(Normalize(s2))
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows are enough
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// Threshold returns the typo tolerance for a query of the given length
func Threshold(query string) int {
	l := len([]rune(query))
	switch {
	case l <= 3:
		return 0
	case l <= 5:
		return 1
	case l >= 8:
		return 3
	default:
		return 2
	}
}

// Match checks if query fuzzy-matches text within a given threshold
func Match(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)
	if query == "" {
		return false
	}

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}

	return false
}

// Field is a piece of text to score with its weight
type Field struct {
	Text   string
	Weight float64
}

// Score rates how relevant the fields are to the query. Higher is better, 0 means no match.
// Every query word is scored independently: exact word 1.0, substring 0.8, prefix 0.6,
// typo within threshold 0.5 minus 0.1 per edit.
func Score(query string, fields ...Field) float64 {
	words := strings.Fields(Normalize(query))
	if len(words) == 0 {
		return 0
	}

	total := 0.0
	for _, f := range fields {
		text := Normalize(f.Text)
		if text == "" {
			continue
		}
		textWords := strings.Fields(text)

		fieldScore := 0.0
		for _, q := range words {
			best := 0.0
			switch {
			case containsWord(textWords, q):
				best = 1.0
			case strings.Contains(text, q):
				best = 0.8
			default:
				threshold := Threshold(q)
				for _, w := range textWords {
					if strings.HasPrefix(w, q) && best < 0.6 {
						best = 0.6
					}
					if threshold == 0 {
						continue
					}
					if d := LevenshteinDistance(q, w); d <= threshold {
						if s := 0.5 - 0.1*float64(d); s > best {
							best = s
						}
					}
				}
			}
			fieldScore += best
		}
		total += f.Weight * fieldScore / float64(len(words))
	}

	// Whole phrase present somewhere is a strong signal
	phrase := strings.Join(words, " ")
	if len(words) > 1 {
		for _, f := range fields {
			if strings.Contains(Normalize(f.Text), phrase) {
				total += f.Weight * 0.5
				break
			}
		}
	}

	return total
}

// Helper functions

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// Normalize lowercases, strips accents and collapses whitespace
func Normalize(s string) string {
	s = strings.ToLower(removeAccents(s))
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(words []string, query string) bool {
	for _, word := range words {
		if strings.Trim(word, ".,;:!?\"'()") == query {
			return true
		}
	}
	return false
}

// removeAccents maps common accented Latin letters to ASCII
func removeAccents(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) { // Mn: Mark, nonspacing
			continue
		}
		switch r {
		case 'á', 'à', 'â', 'ä', 'ã', 'å', 'Á', 'À', 'Â', 'Ä':
			result.WriteRune('a')
		case 'é', 'è', 'ê', 'ë', 'É', 'È', 'Ê':
			result.WriteRune('e')
		case 'í', 'ì', 'î', 'ï', 'Í':
			result.WriteRune('i')
		case 'ó', 'ò', 'ô', 'ö', 'õ', 'ø', 'Ó', 'Ö':
			result.WriteRune('o')
		case 'ú', 'ù', 'û', 'ü', 'Ú', 'Ü':
			result.WriteRune('u')
		case 'ñ', 'Ñ':
			result.WriteRune('n')
		case 'ç', 'Ç':
			result.WriteRune('c')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
