package search

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"magpie/logger"
)

const (
	defaultEndpoint = "https://html.duckduckgo.com/html/"
	maxResults      = 5
	pageBudget      = 2000 // runes of top-result page content included in the context
	userAgent       = "Mozilla/5.0 (X11; Linux x86_64) magpie/1.0"
)

var (
	resultLinkRe    = regexp.MustCompile(`class="result__a"[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
)

// Provider wraps DuckDuckGo's html endpoint. Fetch never fails: any error on
// the way turns into the fallback sentinel so the answer flow keeps moving.
type Provider struct {
	Endpoint  string
	FetchPage bool // also pull the top result's page into the context
	client    *http.Client
}

func NewProvider() *Provider {
	return &Provider{
		Endpoint:  defaultEndpoint,
		FetchPage: true,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch returns web context for the question, or the fixed unavailability
// sentinel. Callers never see an error.
func (p *Provider) Fetch(question string) string {
	results, err := p.search(question)
	if err != nil {
		logger.Debug.Printf("search failed: %v", err)
		return fmt.Sprintf("Search unavailable: %v. Using model knowledge only.", err)
	}
	return results
}

func (p *Provider) search(question string) (string, error) {
	body, err := p.get(fmt.Sprintf("%s?q=%s", p.Endpoint, url.QueryEscape(question)))
	if err != nil {
		return "", err
	}

	links := resultLinkRe.FindAllStringSubmatch(body, maxResults)
	snippets := resultSnippetRe.FindAllStringSubmatch(body, maxResults)
	if len(links) == 0 {
		return "", fmt.Errorf("no results found")
	}

	var sb strings.Builder
	for i, link := range links {
		title := cleanFragment(link[2])
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, title))
		if i < len(snippets) {
			sb.WriteString(" - " + cleanFragment(snippets[i][1]))
		}
		sb.WriteString("\n")
	}

	if p.FetchPage {
		if page := p.topResultContent(resolveResultURL(links[0][1])); page != "" {
			sb.WriteString("\n")
			sb.WriteString(page)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// topResultContent fetches the first result and converts it to markdown.
// Best effort only, a dead link just means a thinner context.
func (p *Provider) topResultContent(pageURL string) string {
	if pageURL == "" {
		return ""
	}

	body, err := p.get(pageURL)
	if err != nil {
		logger.Debug.Printf("could not fetch top result %s: %v", pageURL, err)
		return ""
	}

	markdown, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		logger.Debug.Printf("could not convert top result to markdown: %v", err)
		return ""
	}

	markdown = strings.TrimSpace(markdown)
	if runes := []rune(markdown); len(runes) > pageBudget {
		markdown = string(runes[:pageBudget]) + "..."
	}

	return fmt.Sprintf("Top result (%s):\n%s", pageURL, markdown)
}

func (p *Provider) get(rawURL string) (string, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK response status: %d", resp.StatusCode)
	}

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// resolveResultURL unwraps DuckDuckGo's redirect links (//duckduckgo.com/l/?uddg=<encoded>).
func resolveResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return href
}

func cleanFragment(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, "")
	return strings.TrimSpace(html.UnescapeString(text))
}
