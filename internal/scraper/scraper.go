package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/httpclient"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/tidwall/gjson"
)

// CalendarPageURL is the district page listing the monthly event calendars.
const CalendarPageURL = "https://scssd.org/sports-complex-info/"

// Link is one published calendar.
type Link struct {
	Month event.Month `json:"month"`
	Label string      `json:"label"`
	URL   string      `json:"url"`
}

// Scraper fetches and parses the calendar page.
type Scraper struct {
	client *retryablehttp.Client
	url    string
}

// New creates a Scraper for pageURL. An empty pageURL selects CalendarPageURL.
func New(pageURL string, client *retryablehttp.Client) *Scraper {
	if pageURL == "" {
		pageURL = CalendarPageURL
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return &Scraper{client: client, url: pageURL}
}

// FetchLinks fetches the calendar page and returns every calendar link found on it.
func (s *Scraper) FetchLinks(ctx context.Context) ([]Link, error) {
	req, err := httpclient.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if err := httpclient.CheckStatus(resp); err != nil {
		return nil, err
	}

	base, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	return s.parseLinks(resp.Body, base)
}

// entryPattern matches a "month" field followed by its "pdf_file" object.
var entryPattern = regexp.MustCompile(`(?s)"month"\s*:\s*"([^"]+)"\s*,\s*"pdf_file"\s*:\s*(\{.*?\})`)

// filenameMonth finds a month name followed by a year, as in "May2024_v2.pdf".
var filenameMonth = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[-_ ]?(\d{4})`)

func (s *Scraper) parseLinks(r io.Reader, base *url.URL) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	links := make([]Link, 0)

	// Strategy 1: page-builder data in scripts and data-settings attributes
	blobs := make([]string, 0)
	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		blobs = append(blobs, sel.Text())
	})
	doc.Find("[data-settings]").Each(func(i int, sel *goquery.Selection) {
		if v, ok := sel.Attr("data-settings"); ok {
			blobs = append(blobs, v)
		}
	})
	for _, blob := range blobs {
		for _, m := range entryPattern.FindAllStringSubmatch(blob, -1) {
			label := strings.ReplaceAll(m[1], `\`, "")
			month, err := ParseMonth(label)
			if err != nil {
				logger.Debug("skipping calendar entry", logger.Fields{"label": label, "reason": err.Error()})
				continue
			}
			href := gjson.Get(m[2], "url").String()
			if href == "" {
				logger.Debug("calendar entry without url", logger.Fields{"label": label})
				continue
			}
			links = append(links, Link{Month: month, Label: label, URL: resolve(base, strings.ReplaceAll(href, `\`, ""))})
		}
	}

	// Strategy 2: anchors to PDF files
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), ".pdf") {
			return
		}
		abs := resolve(base, strings.TrimSpace(href))
		month, label, ok := monthFromAnchor(abs, strings.TrimSpace(sel.Text()))
		if !ok {
			return
		}
		links = append(links, Link{Month: month, Label: label, URL: abs})
	})

	seen := make(map[string]bool)
	unique := make([]Link, 0, len(links))
	for _, l := range links {
		if !seen[l.URL] {
			seen[l.URL] = true
			unique = append(unique, l)
		}
	}

	return unique, nil
}

func monthFromAnchor(href, text string) (event.Month, string, bool) {
	name := path.Base(href)
	if u, err := url.Parse(href); err == nil {
		name = path.Base(u.Path)
	}
	for _, candidate := range []string{name, text} {
		m := filenameMonth.FindStringSubmatch(candidate)
		if m == nil {
			continue
		}
		label := strings.ToLower(m[1]) + m[2]
		month, err := ParseMonth(label)
		if err == nil {
			return month, label, true
		}
	}
	return event.Month{}, "", false
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Sort orders links by month, then URL.
func Sort(links []Link) {
	sort.Slice(links, func(i, j int) bool {
		if links[i].Month != links[j].Month {
			return links[i].Month.Before(links[j].Month)
		}
		return links[i].URL < links[j].URL
	})
}
