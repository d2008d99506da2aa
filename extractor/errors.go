package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidYouTubeURL is returned when a YouTube URL carries no video id.
	ErrInvalidYouTubeURL = errors.New("invalid youtube url")
	// ErrTranscriptUnavailable is returned when a video has no usable captions.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrPageTooLarge is returned when a page body exceeds the reader's size cap.
	ErrPageTooLarge = errors.New("page too large")
)

// FetchError reports a failed page download: either the request itself failed
// (Err set) or the server answered with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports an HTML element the page was expected to contain.
type ParseError struct {
	URL     string
	Element string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: no <%s> element", e.URL, e.Element)
}
