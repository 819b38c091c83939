package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
)

const webUserAgent = "insurance-quotes/1.0"

type webConfig struct {
	BaseURL        *url.URL
	FormPath       string
	RequestTimeout time.Duration
	Currency       string
}

func parseWebConfig(settings map[string]string) (webConfig, error) {
	base, err := settingBaseURL(settings)
	if err != nil {
		return webConfig{}, err
	}
	cfg := webConfig{
		BaseURL:  base,
		FormPath: settingString(settings, "form_path", "quote"),
		Currency: strings.ToUpper(settingString(settings, "currency", "")),
	}
	if cfg.RequestTimeout, err = settingDuration(settings, "request_timeout", 45*time.Second); err != nil {
		return webConfig{}, err
	}
	return cfg, nil
}

// WebProvider fills an insurer's public quote form and scrapes the result
// page. Every instance owns its cookie jar and connection pool.
type WebProvider struct {
	code      string
	cfg       webConfig
	transport http.RoundTripper
	log       *logger.Logger

	owned  *http.Transport
	client *http.Client
}

var _ provider.Provider = (*WebProvider)(nil)

func (p *WebProvider) Code() string { return p.code }

// Initialize opens the browsing session: a fresh cookie jar primed by
// loading the form page.
func (p *WebProvider) Initialize(ctx context.Context) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return provider.Transient("create cookie jar", err)
	}
	rt := p.transport
	if t, ok := rt.(*http.Transport); ok {
		p.owned = t.Clone()
		rt = p.owned
	}
	p.client = &http.Client{Transport: rt, Jar: jar, Timeout: p.cfg.RequestTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolve(p.cfg.BaseURL, p.cfg.FormPath), nil)
	if err != nil {
		return provider.Transient("build form request", err)
	}
	req.Header.Set("User-Agent", webUserAgent)
	resp, err := p.client.Do(req)
	if err != nil {
		return provider.Transient("open form", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return provider.Transient("open form", fmt.Errorf("insurer returned %s", resp.Status))
	}
	return nil
}

func (p *WebProvider) FetchQuote(ctx context.Context, category string, payload map[string]any) (provider.RawQuote, error) {
	form := url.Values{}
	form.Set("category", category)
	flattenForm(form, "", payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resolve(p.cfg.BaseURL, p.cfg.FormPath), strings.NewReader(form.Encode()))
	if err != nil {
		return provider.RawQuote{}, provider.Transient("build quote request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", webUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return provider.RawQuote{}, provider.Transient("submit form", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return provider.RawQuote{}, provider.Transient("submit form", fmt.Errorf("insurer returned %s", resp.Status))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return provider.RawQuote{}, provider.Transient("parse result page", err)
	}
	return p.extractQuote(doc)
}

// Cleanup closes the per-run connection pool.
func (p *WebProvider) Cleanup(context.Context) error {
	if p.owned != nil {
		p.owned.CloseIdleConnections()
	}
	return nil
}

func (p *WebProvider) extractQuote(doc *goquery.Document) (provider.RawQuote, error) {
	if msg := strings.TrimSpace(doc.Find(".quote-error").First().Text()); msg != "" {
		return provider.RawQuote{}, provider.Validation("%s", msg)
	}

	priceText := strings.TrimSpace(doc.Find(".quote-price").First().Text())
	if priceText == "" {
		return provider.RawQuote{}, provider.Transient("scrape quote", fmt.Errorf("price element not found"))
	}
	price, err := parseAmount(priceText)
	if err != nil {
		return provider.RawQuote{}, provider.Transient("scrape quote", err)
	}

	currency := strings.ToUpper(strings.TrimSpace(doc.Find(".quote-currency").First().Text()))
	if currency == "" {
		currency = p.cfg.Currency
	}

	coverage := map[string]any{}
	doc.Find("table.coverages tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if name == "" {
			return
		}
		if amount, err := parseAmount(value); err == nil {
			coverage[name] = amount
		} else {
			coverage[name] = value
		}
	})

	html, _ := doc.Find(".quote-result").First().Html()
	if html == "" {
		html, _ = doc.Html()
	}
	raw, err := jsonString(html)
	if err != nil {
		return provider.RawQuote{}, provider.Transient("encode raw page", err)
	}

	p.log.Debug("quote scraped", "price", price, "coverages", len(coverage))
	return provider.RawQuote{
		Price:           price,
		Currency:        currency,
		CoverageDetails: coverage,
		RawPayload:      raw,
	}, nil
}

// flattenForm writes nested payload maps as dotted form keys, in key order.
func flattenForm(form url.Values, prefix string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		switch v := payload[k].(type) {
		case map[string]any:
			flattenForm(form, name, v)
		case nil:
		default:
			form.Set(name, fmt.Sprint(v))
		}
	}
}

// parseAmount reads prices such as "1.234,50 TL", "$1,234.50" or "980".
// When both separators appear, the last one is the decimal mark; a lone
// separator followed by exactly three digits groups thousands.
func parseAmount(text string) (float64, error) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, fmt.Errorf("no amount in %q", text)
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1 || (lastDot >= 0 && len(s)-lastDot-1 == 3):
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", text, err)
	}
	return v, nil
}
