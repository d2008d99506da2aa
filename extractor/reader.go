package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent is sent with every page request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxPageBytes = 8 << 20

// Options configures a Reader. Zero values fall back to sane defaults.
type Options struct {
	Client      *http.Client
	UserAgent   string
	Transcripts TranscriptSource
}

// Reader turns a source URL into text: a page title, a page body, or a
// YouTube transcript.
type Reader struct {
	client      *http.Client
	userAgent   string
	transcripts TranscriptSource
	maxBytes    int64
}

func NewReader(opts Options) *Reader {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	transcripts := opts.Transcripts
	if transcripts == nil {
		transcripts = NewWatchPageSource(client, nil)
	}
	return &Reader{client: client, userAgent: ua, transcripts: transcripts, maxBytes: maxPageBytes}
}

// Title fetches url and returns the trimmed text of its first <title>.
func (r *Reader) Title(ctx context.Context, url string) (string, error) {
	doc, err := r.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", &ParseError{URL: url, Element: "title"}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// Content returns the source text of url. YouTube videos yield their
// transcript; any other page yields "{header}\n\n{paragraphs}".
func (r *Reader) Content(ctx context.Context, url string) (string, error) {
	if IsYouTubeURL(url) {
		return r.Transcript(ctx, url)
	}

	doc, err := r.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}

	header := doc.Find("h1").First()
	if header.Length() == 0 {
		header = doc.Find("title").First()
	}
	if header.Length() == 0 {
		return "", &ParseError{URL: url, Element: "title"}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(s.Text()))
	})

	return strings.TrimSpace(header.Text()) + "\n\n" + strings.Join(paragraphs, " "), nil
}

// Transcript resolves the video behind a YouTube URL and returns its caption
// text joined by single spaces.
func (r *Reader) Transcript(ctx context.Context, url string) (string, error) {
	id, err := VideoID(url)
	if err != nil {
		return "", err
	}
	segments, err := r.transcripts.Segments(ctx, id)
	if err != nil {
		return "", err
	}
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return strings.Join(texts, " "), nil
}

func (r *Reader) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := fetch(ctx, r.client, r.userAgent, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	page, err := io.ReadAll(io.LimitReader(body, r.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if int64(len(page)) > r.maxBytes {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("%w: over %d bytes", ErrPageTooLarge, r.maxBytes)}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
