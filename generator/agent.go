package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ContentSource turns a URL into the text the generators work from.
type ContentSource interface {
	Title(ctx context.Context, url string) (string, error)
	Content(ctx context.Context, url string) (string, error)
}

// Agent produces a creative title and a rewritten article for a source URL.
type Agent struct {
	llm    LLMClient
	source ContentSource
}

func NewAgent(llm LLMClient, source ContentSource) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if source == nil {
		return nil, errors.New("content source is required")
	}
	return &Agent{llm: llm, source: source}, nil
}

// GenerateTitle turns an extracted page title into a creative one.
func (a *Agent) GenerateTitle(ctx context.Context, sourceTitle string) (string, error) {
	raw, err := a.llm.Complete(ctx, BuildTitlePrompt(sourceTitle))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// GenerateArticle reads url and rewrites it following stylePrompt.
func (a *Agent) GenerateArticle(ctx context.Context, stylePrompt, url string) (string, error) {
	text, err := a.source.Content(ctx, url)
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}
	raw, err := a.llm.Complete(ctx, BuildArticlePrompt(stylePrompt, text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Generate runs the whole pipeline: page title, creative title, article.
// Steps run one after another; the first failure stops the run.
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	sourceTitle, err := a.source.Title(ctx, req.URL)
	if err != nil {
		return Result{}, fmt.Errorf("extract title: %w", err)
	}
	title, err := a.GenerateTitle(ctx, sourceTitle)
	if err != nil {
		return Result{}, fmt.Errorf("generate title: %w", err)
	}
	content, err := a.GenerateArticle(ctx, req.SystemPrompt, req.URL)
	if err != nil {
		return Result{}, fmt.Errorf("generate article: %w", err)
	}
	return Result{Title: title, Content: content}, nil
}
