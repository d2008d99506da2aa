package generator

import "fmt"

// Prompt is the message set sent to the LLM. System is optional.
type Prompt struct {
	System string
	User   string
}

// BuildTitlePrompt asks for a creative title for an extracted page title.
// The character restrictions are a hint to the model only.
func BuildTitlePrompt(sourceTitle string) Prompt {
	return Prompt{
		User: fmt.Sprintf("Return creative title, no more than 30 words for the following article: %s. "+
			"Without any special characters, only letters and numbers. "+
			"Do not use any quotes or special characters in the title.", sourceTitle),
	}
}

// BuildArticlePrompt embeds the caller's style instructions and the source
// text verbatim.
func BuildArticlePrompt(stylePrompt, articleText string) Prompt {
	return Prompt{
		User: fmt.Sprintf("You are professional Media AI Assistant Article Writer - "+
			"Write an article according to this setup %s based on the following article: %s. "+
			"Without any special characters, only letters and numbers. "+
			"Do not use any quotes or special characters.", stylePrompt, articleText),
	}
}
