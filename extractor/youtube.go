package extractor

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultWatchURL is the page the player response is scraped from.
const DefaultWatchURL = "https://www.youtube.com/watch"

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	maxWatchPageBytes    = 6 << 20
	maxTimedTextBytes    = 2 << 20
)

var inlineTagRE = regexp.MustCompile(`<[^>]*>`)

// Segment is one timed caption unit. Start and Duration are in seconds.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// TranscriptSource retrieves the ordered caption segments of a video.
type TranscriptSource interface {
	Segments(ctx context.Context, videoID string) ([]Segment, error)
}

// IsYouTubeURL reports whether raw points at a YouTube watch page or a
// youtu.be short link.
func IsYouTubeURL(raw string) bool {
	u, err := parseLoose(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		return true
	}
	if host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") {
		return strings.TrimSuffix(u.Path, "/") == "/watch"
	}
	return false
}

// VideoID extracts the video id from a YouTube URL. Short links win over the
// v query parameter.
func VideoID(raw string) (string, error) {
	u, err := parseLoose(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidYouTubeURL, raw)
	}
	if strings.EqualFold(u.Hostname(), "youtu.be") {
		id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if id == "" {
			return "", fmt.Errorf("%w: %s", ErrInvalidYouTubeURL, raw)
		}
		return id, nil
	}
	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidYouTubeURL, raw)
}

// parseLoose parses raw, assuming https when the scheme is missing.
func parseLoose(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return url.Parse(raw)
}

// WatchPageSource scrapes the caption track list out of the watch page's
// player response and downloads the chosen track as timedtext XML.
type WatchPageSource struct {
	WatchURL  string
	UserAgent string

	client    *http.Client
	languages []string
}

type captionTrack struct {
	BaseURL      string
	LanguageCode string
	Kind         string
}

type timedText struct {
	Lines []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// NewWatchPageSource builds a source preferring captions in languages, in
// order. An empty list means English.
func NewWatchPageSource(client *http.Client, languages []string) *WatchPageSource {
	if client == nil {
		client = http.DefaultClient
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &WatchPageSource{
		WatchURL:  DefaultWatchURL,
		UserAgent: DefaultUserAgent,
		client:    client,
		languages: languages,
	}
}

func (s *WatchPageSource) Segments(ctx context.Context, videoID string) ([]Segment, error) {
	tracks, err := s.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	track, ok := pickTrack(tracks, s.languages)
	if !ok {
		return nil, fmt.Errorf("%w: %s: no captions in %s", ErrTranscriptUnavailable, videoID, strings.Join(s.languages, ", "))
	}

	segments, err := s.fetchSegments(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s: empty caption track", ErrTranscriptUnavailable, videoID)
	}
	return segments, nil
}

func (s *WatchPageSource) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	body, err := fetch(ctx, s.client, s.UserAgent, s.WatchURL+"?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	page, err := io.ReadAll(io.LimitReader(body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page %s: %w", videoID, err)
	}

	idx := strings.Index(string(page), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s: player response not found", ErrTranscriptUnavailable, videoID)
	}
	player := extractJSON(page[idx+len(playerResponseMarker):])
	if player == nil {
		return nil, fmt.Errorf("%w: %s: malformed player response", ErrTranscriptUnavailable, videoID)
	}

	list := gjson.GetBytes(player, "captions.playerCaptionsTracklistRenderer.captionTracks").Array()
	if len(list) == 0 {
		reason := gjson.GetBytes(player, "playabilityStatus.reason").String()
		if reason == "" {
			reason = "captions disabled"
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrTranscriptUnavailable, videoID, reason)
	}

	tracks := make([]captionTrack, 0, len(list))
	for _, t := range list {
		tracks = append(tracks, captionTrack{
			BaseURL:      t.Get("baseUrl").String(),
			LanguageCode: t.Get("languageCode").String(),
			Kind:         t.Get("kind").String(),
		})
	}
	return tracks, nil
}

func (s *WatchPageSource) fetchSegments(ctx context.Context, baseURL string) ([]Segment, error) {
	body, err := fetch(ctx, s.client, s.UserAgent, strings.Replace(baseURL, "&fmt=srv3", "", 1))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxTimedTextBytes))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}
	var tt timedText
	if err := xml.Unmarshal(raw, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(inlineTagRE.ReplaceAllString(html.UnescapeString(line.Text), ""))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	return segments, nil
}

// pickTrack walks languages in order and, within each language, prefers a
// manually created track over an auto-generated one.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		for _, generated := range []bool{false, true} {
			for _, t := range tracks {
				if t.BaseURL == "" || (t.Kind == "asr") != generated {
					continue
				}
				if strings.EqualFold(t.LanguageCode, lang) {
					return t, true
				}
			}
		}
	}
	return captionTrack{}, false
}

// extractJSON returns the leading JSON object of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
