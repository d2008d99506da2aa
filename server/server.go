package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"article_rewriter/extractor"
	"article_rewriter/generator"
	"article_rewriter/render"
)

const (
	fallbackTitle   = "The Steppe"
	fallbackContent = "The Steppe is a vast, treeless plain, characterized by its grassland ecosystem and often found in regions with a continental climate. It is known for its unique flora and fauna, as well as its historical significance as a habitat for nomadic cultures."
)

// Fallback returns the article served in place of a generated one whenever
// the pipeline fails and strict errors are off.
func Fallback() generator.Result {
	return generator.Result{Title: fallbackTitle, Content: fallbackContent}
}

// Generator runs the title and article pipeline for one request.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
}

// Options tune the handler's failure policy and logging.
type Options struct {
	// StrictErrors surfaces failures as error responses instead of the
	// Fallback article.
	StrictErrors bool
	Verbose      bool
	Logger       *log.Logger
}

type Server struct {
	gen     Generator
	strict  bool
	verbose bool
	logger  *log.Logger
}

func New(gen Generator, opts Options) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		gen:     gen,
		strict:  opts.StrictErrors,
		verbose: opts.Verbose,
		logger:  logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logMiddleware())
	r.GET("/generate_article", s.handleGenerateArticle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// --- Handlers ---

type generateReq struct {
	SystemPrompt string `form:"system_prompt"`
	URL          string `form:"url"`
	Format       string `form:"format"`
}

type generateResp struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`
}

func (s *Server) handleGenerateArticle(c *gin.Context) {
	// Only absent parameters are rejected; empty values run the pipeline.
	for _, name := range []string{"system_prompt", "url"} {
		if _, ok := c.GetQuery(name); !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "missing query parameter: " + name})
			return
		}
	}

	var req generateReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	res, err := s.gen.Generate(c.Request.Context(), generator.Request{
		SystemPrompt: req.SystemPrompt,
		URL:          req.URL,
	})
	if err != nil {
		if s.strict {
			s.logger.Printf("[server] generate url=%s failed: %v", req.URL, err)
			c.JSON(statusFor(err), gin.H{"detail": err.Error()})
			return
		}
		s.logger.Printf("[server] generate url=%s failed, serving fallback: %v", req.URL, err)
		res = Fallback()
	}

	resp := generateResp{Title: res.Title, Content: res.Content}
	if req.Format == "html" {
		html, err := render.MarkdownToHTML(res.Content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		resp.ContentHTML = html
	}
	c.JSON(http.StatusOK, resp)
}

// --- Helpers ---

func statusFor(err error) int {
	if errors.Is(err, extractor.ErrInvalidYouTubeURL) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if !s.verbose {
			return
		}
		s.logger.Printf("[server] %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
