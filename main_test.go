package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article_rewriter/config"
	"article_rewriter/extractor"
	"article_rewriter/generator"
)

func TestBuildLLM(t *testing.T) {
	llm, err := buildLLM(config.Config{LLM: &config.LLMConfig{Provider: "mock"}})
	require.NoError(t, err)
	assert.IsType(t, generator.MockLLM{}, llm)

	llm, err = buildLLM(config.Config{LLM: &config.LLMConfig{Provider: "groq", APIKey: "k"}})
	require.NoError(t, err)
	oa, ok := llm.(*generator.OpenAILLM)
	require.True(t, ok)
	assert.Equal(t, generator.DefaultModel, oa.Model)

	_, err = buildLLM(config.Config{LLM: &config.LLMConfig{Provider: "openai", APIKey: "k"}})
	assert.Error(t, err)

	_, err = buildLLM(config.Config{LLM: &config.LLMConfig{Provider: "llamafile"}})
	assert.Error(t, err)
}

func TestFetchClientTimeout(t *testing.T) {
	client := fetchClient(config.Config{Fetch: config.FetchConfig{TimeoutSeconds: 7}})
	assert.Equal(t, 7*time.Second, client.Timeout)
}

func TestBuildReaderTimesOutSlowPages(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	reader := buildReader(config.Config{Fetch: config.FetchConfig{TimeoutSeconds: 1}})
	start := time.Now()
	_, err := reader.Title(context.Background(), srv.URL+"/slow")
	var ferr *extractor.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestBuildTranscriptsUsesConfiguredLanguages(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			fmt.Fprintf(w, `<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
				`{"baseUrl":"%[1]s/tt?lang=en","languageCode":"en"},{"baseUrl":"%[1]s/tt?lang=de","languageCode":"de"}]}}};</script>`, srv.URL)
		case "/tt":
			fmt.Fprintf(w, `<transcript><text start="0" dur="1">caption %s</text></transcript>`, r.URL.Query().Get("lang"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.Config{
		Fetch:   config.FetchConfig{UserAgent: "rewriter-test"},
		YouTube: config.YouTubeConfig{Languages: []string{"de", "en"}},
	}
	src := buildTranscripts(cfg, srv.Client())
	src.WatchURL = srv.URL + "/watch"
	assert.Equal(t, "rewriter-test", src.UserAgent)

	segments, err := src.Segments(context.Background(), "vid")
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "caption de", segments[0].Text)
}

func TestRunOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Foo</title></head><body><p>One.</p></body></html>`))
	}))
	defer srv.Close()

	agent, err := generator.NewAgent(generator.MockLLM{}, extractor.NewReader(extractor.Options{Client: srv.Client()}))
	require.NoError(t, err)
	assert.NoError(t, runOnce(agent, "Write a two-sentence summary", srv.URL, true))

	assert.Error(t, runOnce(agent, "style", "http://127.0.0.1:1/unreachable", false))
}
