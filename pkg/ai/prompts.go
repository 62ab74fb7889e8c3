package ai

import (
	"fmt"
	"strings"
)

func buildMatchPrompt(description string, candidates []Candidate) string {
	var sb strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- id: %s | context: %s | thought: %s\n", c.ID, c.ContextTag, c.Content)
	}

	return fmt.Sprintf(`You help a person prepare for an upcoming moment by picking which of their saved thoughts are most useful for it.

MOMENT:
%s

THOUGHTS:
%s
INSTRUCTIONS:
- Pick at most 5 thoughts that would genuinely help in this moment.
- Score each from 0.0 to 1.0. Only include thoughts scoring 0.5 or higher.
- Give a one sentence reason addressed to the person.
- Use the exact ids from the list.

Return ONLY a JSON array: [{"gem_id": "...", "relevance_score": 0.8, "relevance_reason": "..."}]. Return [] if nothing fits.`, description, sb.String())
}

func buildCapturePrompt(content string, imageCount int, contextSlugs []string) string {
	imageNote := ""
	if imageCount > 0 {
		imageNote = fmt.Sprintf("\n%d image(s) are attached; read any text or ideas in them too.", imageCount)
	}

	return fmt.Sprintf(`Extract the distinct insights worth remembering from the material below.%s

For each item return:
- content: the insight in the author's words where possible, under 300 characters
- type: "gem" for a quotable insight, "note" for longer reference material, "source" for a book/article/podcast mention
- context_slug: one of [%s]
- source: author or work, if known
- confidence: 0.0 to 1.0

Return ONLY JSON: {"items": [...]}. Return {"items": []} if there is nothing worth keeping.

MATERIAL:
%s`, imageNote, strings.Join(contextSlugs, ", "), content)
}

func buildDiscoveryPrompt(query, contextSlug string, grounded bool) string {
	searchNote := "Draw on well known books, research and practitioners."
	if grounded {
		searchNote = "Search the web for reputable sources and cite them."
	}
	contextNote := ""
	if contextSlug != "" {
		contextNote = fmt.Sprintf(" The person files these under %q.", contextSlug)
	}

	return fmt.Sprintf(`Suggest up to 4 short, practical thoughts about: %s.%s
%s

Each thought must be one or two sentences the person can apply today.
Return ONLY a JSON array: [{"content": "...", "source_title": "...", "source_url": "...", "context_slug": "..."}].`, query, contextNote, searchNote)
}
