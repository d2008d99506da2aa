package generator

// Request is the caller input of one generation.
type Request struct {
	SystemPrompt string
	URL          string
}

// Result is the generated title and article body.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
