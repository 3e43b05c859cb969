package social

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Signal classifies what an authorship/phrase lookup could establish.
type Signal int

const (
	// SignalFound means the lookup produced a definitive answer.
	SignalFound Signal = iota
	// SignalNotFound means the resource definitively does not exist
	// (protocol-level 404). Callers may hard-reject on this.
	SignalNotFound
	// SignalAmbiguous means the content may be legitimate but automated
	// verification could not confirm it (blocked, server error, timeout,
	// unexpected page structure). Callers must NOT treat this as failure;
	// it routes to manual review.
	SignalAmbiguous
)

func (s Signal) String() string {
	switch s {
	case SignalFound:
		return "found"
	case SignalNotFound:
		return "not_found"
	default:
		return "ambiguous"
	}
}

// Authorship is the outcome of resolving who authored a piece of content.
type Authorship struct {
	Handle string
	Signal Signal
}

// PhraseCheck is the outcome of scanning a page for a verification code.
// Present is only meaningful when Signal == SignalFound.
type PhraseCheck struct {
	Present bool
	Signal  Signal
}

// Resolver is what the services consume; Fetcher is the production
// implementation, tests substitute stubs.
type Resolver interface {
	ResolveAuthorship(ctx context.Context, rawURL string, p Platform) Authorship
	FindPhrase(ctx context.Context, rawURL, phrase string) PhraseCheck
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves public pages over plain HTTP and extracts handles or
// verification phrases. Every request carries the client's bounded timeout;
// a stalled upstream is cancelled and classified as ambiguous.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	return &Fetcher{client: client, userAgent: defaultUserAgent}
}

// ResolveAuthorship maps a content URL to its author's handle.
//
// Moj content URLs embed the author handle, so no network call is needed;
// a URL that doesn't match the grammar is definitively not a Moj link.
// ShareChat requires fetching the page and trying extraction strategies in
// priority order: OpenGraph og:url first, embedded JSON-LD second.
func (f *Fetcher) ResolveAuthorship(ctx context.Context, rawURL string, p Platform) Authorship {
	switch p {
	case PlatformMoj:
		if h, ok := ExtractHandle(rawURL, PlatformMoj); ok {
			return Authorship{Handle: h, Signal: SignalFound}
		}
		return Authorship{Signal: SignalNotFound}

	case PlatformShareChat:
		doc, sig := f.fetchDocument(ctx, rawURL)
		if sig != SignalFound {
			return Authorship{Signal: sig}
		}
		if h := shareChatFromOpenGraph(doc); h != "" {
			return Authorship{Handle: h, Signal: SignalFound}
		}
		if h := shareChatFromJSONLD(doc); h != "" {
			return Authorship{Handle: h, Signal: SignalFound}
		}
		// Page fetched fine but no strategy produced a handle: likely a
		// structure change or an unexpected page, not proof of anything.
		return Authorship{Signal: SignalAmbiguous}
	}
	return Authorship{Signal: SignalAmbiguous}
}

// FindPhrase fetches a profile page and scans its visible text for the
// verification code.
func (f *Fetcher) FindPhrase(ctx context.Context, rawURL, phrase string) PhraseCheck {
	doc, sig := f.fetchDocument(ctx, rawURL)
	if sig != SignalFound {
		return PhraseCheck{Signal: sig}
	}
	return PhraseCheck{
		Present: strings.Contains(doc.Text(), phrase),
		Signal:  SignalFound,
	}
}

// fetchDocument GETs a page and parses it. 404 is the only definitive
// negative; everything else that goes wrong is ambiguous.
func (f *Fetcher) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, Signal) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return nil, SignalNotFound
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("[FETCH] request to %s failed: %v", rawURL, err)
		return nil, SignalAmbiguous
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, SignalNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[FETCH] %s returned status %d", rawURL, resp.StatusCode)
		return nil, SignalAmbiguous
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("[FETCH] failed to parse %s: %v", rawURL, err)
		return nil, SignalAmbiguous
	}
	return doc, SignalFound
}

// shareChatFromOpenGraph reads the og:url meta tag, which points at the
// author's profile for post pages.
func shareChatFromOpenGraph(doc *goquery.Document) string {
	ogURL, _ := doc.Find(`meta[property="og:url"]`).Attr("content")
	return handleAfterProfile(ogURL)
}

// shareChatFromJSONLD falls back to the structured-data block some page
// variants embed instead of OpenGraph tags.
func shareChatFromJSONLD(doc *goquery.Document) string {
	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return ""
	}
	var data struct {
		Author struct {
			URL string `json:"url"`
		} `json:"author"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return ""
	}
	return handleAfterProfile(data.Author.URL)
}
