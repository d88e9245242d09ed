package rag

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/web-mind/vectorstore"
)

const promptTemplate = `You are a helpful assistant. Answer the user query best possible to address the user's needs.
You are given a context and a query.
Context: %s.
History : %s.

Query: %s.
`

// BuildPrompt merges retrieved context, optional chat history and the
// user query into one instruction text. Each retrieved text is prefixed
// with two spaces and terminated with a newline; with no results the
// context block is simply empty.
func BuildPrompt(results []vectorstore.Result, query, chatHistory string) string {
	var context strings.Builder
	for _, r := range results {
		context.WriteString("  ")
		context.WriteString(r.Text)
		context.WriteString("\n")
	}
	return fmt.Sprintf(promptTemplate, context.String(), chatHistory, query)
}
