package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"article_rewriter/config"
	"article_rewriter/extractor"
	"article_rewriter/generator"
	"article_rewriter/render"
	"article_rewriter/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config.json", "path to config.json (optional)")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	url := flag.String("url", "", "generate once for this source url and exit")
	prompt := flag.String("prompt", "", "style prompt used with --url")
	asHTML := flag.Bool("html", false, "render content as HTML with --url")
	mock := flag.Bool("mock", false, "use the mock LLM instead of a provider")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mock {
		cfg.LLM.Provider = "mock"
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	reader := buildReader(cfg)
	agent, err := generator.NewAgent(llm, reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// One-shot mode
	if *url != "" {
		if err := runOnce(agent, *prompt, *url, *asHTML); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := server.New(agent, server.Options{
		StrictErrors: cfg.StrictErrors,
		Verbose:      verbose,
		Logger:       log.Default(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	log.Printf("Starting web server on %s (llm=%s strict_errors=%t)", listen, cfg.LLM.Provider, cfg.StrictErrors)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runOnce(agent *generator.Agent, prompt, url string, asHTML bool) error {
	log.Printf("[cli] generating url=%s", url)
	res, err := agent.Generate(context.Background(), generator.Request{SystemPrompt: prompt, URL: url})
	if err != nil {
		return err
	}
	if asHTML {
		html, err := render.MarkdownToHTML(res.Content)
		if err != nil {
			return err
		}
		res.Content = html
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func buildReader(cfg config.Config) *extractor.Reader {
	client := fetchClient(cfg)
	return extractor.NewReader(extractor.Options{
		Client:      client,
		UserAgent:   cfg.Fetch.UserAgent,
		Transcripts: buildTranscripts(cfg, client),
	})
}

func fetchClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second}
}

func buildTranscripts(cfg config.Config, client *http.Client) *extractor.WatchPageSource {
	src := extractor.NewWatchPageSource(client, cfg.YouTube.Languages)
	if cfg.Fetch.UserAgent != "" {
		src.UserAgent = cfg.Fetch.UserAgent
	}
	return src
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	if cfg.LLM.Provider != "mock" && cfg.LLM.APIKey == "" {
		log.Printf("WARNING: %s is not set; completions will fail until it is", cfg.LLM.APIKeyEnv)
	}
	switch cfg.LLM.Provider {
	case "mock":
		return generator.MockLLM{}, nil
	case "groq":
		if settings.BaseURL == "" {
			settings.BaseURL = generator.DefaultGroqURL
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "openai":
		if settings.Model == "" {
			return nil, fmt.Errorf("llm provider openai requires llm.model")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API at the configured base_url.
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
