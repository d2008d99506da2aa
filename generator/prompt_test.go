package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTitlePrompt(t *testing.T) {
	p := BuildTitlePrompt("Nobel laureate worried about AI image")
	assert.Empty(t, p.System)
	assert.Equal(t, "Return creative title, no more than 30 words for the following article: "+
		"Nobel laureate worried about AI image. Without any special characters, only letters and numbers. "+
		"Do not use any quotes or special characters in the title.", p.User)
}

func TestBuildArticlePromptEmbedsSourceVerbatim(t *testing.T) {
	source := "Foo Header\n\nOne. Two."
	p := BuildArticlePrompt("Write a two-sentence summary", source)
	assert.Equal(t, "You are professional Media AI Assistant Article Writer - Write an article according to this setup "+
		"Write a two-sentence summary based on the following article: Foo Header\n\nOne. Two.. "+
		"Without any special characters, only letters and numbers. Do not use any quotes or special characters.", p.User)
}
