package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	maxBodyBytes = 2 << 20
	maxTextRunes = 20000
)

var ErrInvalidURL = errors.New("invalid URL")

// Article is the readable text of a fetched page
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads an http(s) page and returns its title and visible text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ThoughtFolio/1.0 (+capture)")
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", u.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Host, err)
	}

	a := &Article{URL: u.String()}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		a.Text = collapse(string(body))
	} else {
		a.Title, a.Text = ExtractText(string(body))
	}
	a.Text = truncate(a.Text, maxTextRunes)
	return a, nil
}

var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "nav": true, "footer": true,
	"header": true, "aside": true, "form": true, "svg": true, "iframe": true,
}

var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "blockquote": true, "section": true, "article": true, "tr": true,
}

// ExtractText strips markup, keeps paragraph breaks and drops scripts and page chrome
func ExtractText(doc string) (title, text string) {
	z := html.NewTokenizer(strings.NewReader(doc))
	var sb strings.Builder
	depth := 0
	inTitle := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(title), collapse(sb.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipped[tag] && tt == html.StartTagToken {
				depth++
			}
			if tag == "title" {
				inTitle = true
			}
			if blocks[tag] {
				sb.WriteString("\n\n")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipped[tag] && depth > 0 {
				depth--
			}
			if tag == "title" {
				inTitle = false
			}
			if blocks[tag] {
				sb.WriteString("\n\n")
			}
		case html.TextToken:
			t := string(z.Text())
			if inTitle {
				title += t
				continue
			}
			if depth == 0 {
				sb.WriteString(t)
			}
		}
	}
}

// collapse squeezes runs of spaces and keeps at most one blank line between paragraphs
func collapse(s string) string {
	var paragraphs []string
	for _, block := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		line := strings.Join(strings.Fields(block), " ")
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
