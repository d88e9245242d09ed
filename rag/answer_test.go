package rag

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/SaiNageswarS/web-mind/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error

	calls         int
	lastPrompt    string
	lastModel     string
	lastFallbacks []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt, model string, fallbackModels []string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastModel = model
	f.lastFallbacks = fallbackModels
	return f.reply, f.err
}

func TestBuildPrompt_WithContext(t *testing.T) {
	results := []vectorstore.Result{
		{Text: "We offer blood panels."},
		{Text: "Open weekdays 9-5."},
	}

	prompt := BuildPrompt(results, "What services do you offer?", "user greeted earlier")

	assert.Contains(t, prompt, "  We offer blood panels.\n  Open weekdays 9-5.\n")
	assert.Contains(t, prompt, "Query: What services do you offer?.")
	assert.Contains(t, prompt, "History : user greeted earlier.")
	assert.True(t, strings.HasPrefix(prompt, "You are a helpful assistant."))
}

func TestBuildPrompt_EmptyContextBlock(t *testing.T) {
	prompt := BuildPrompt(nil, "anything there?", "")

	assert.Contains(t, prompt, "Context: .\n")
	assert.Contains(t, prompt, "Query: anything there?.")
}

func TestRetrieveContext_PassesTopKAndRanking(t *testing.T) {
	store := &fakeStore{results: []vectorstore.Result{
		{ID: "a", Score: 0.9, Text: "first"},
		{ID: "b", Score: 0.4, Text: "second"},
	}}
	retriever := NewRetriever(&fakeProvider{}, store, 3)

	results := retriever.RetrieveContext(context.Background(), "zain", "query")

	assert.Equal(t, 3, store.queryTopK)
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestRetrieveContext_FaultsDegradeToEmpty(t *testing.T) {
	t.Run("embedding fault", func(t *testing.T) {
		retriever := NewRetriever(&fakeProvider{err: fmt.Errorf("model down")}, &fakeStore{}, 3)
		assert.Empty(t, retriever.RetrieveContext(context.Background(), "zain", "query"))
	})

	t.Run("store fault", func(t *testing.T) {
		store := &fakeStore{queryErr: fmt.Errorf("index unavailable")}
		retriever := NewRetriever(&fakeProvider{}, store, 3)
		assert.Empty(t, retriever.RetrieveContext(context.Background(), "zain", "query"))
	})
}

func TestAnswer_ReturnsCompletionText(t *testing.T) {
	store := &fakeStore{results: []vectorstore.Result{{ID: "a", Score: 0.9, Text: "We offer lab tests."}}}
	completer := &fakeCompleter{reply: "Lab tests are available."}
	engine := newTestEngine(store, completer)

	answer := engine.Answer(context.Background(), "What services do you offer?", "")

	assert.Equal(t, "Lab tests are available.", answer)
	assert.Equal(t, "model-a", completer.lastModel)
	assert.Equal(t, []string{"model-b", "model-c"}, completer.lastFallbacks)
	assert.Contains(t, completer.lastPrompt, "We offer lab tests.")
}

func TestAnswer_EmptyIndexStillAttemptsCompletion(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{err: fmt.Errorf("all models overloaded")}
	engine := newTestEngine(store, completer)

	answer := engine.Answer(context.Background(), "What services do you offer?", "")

	assert.Equal(t, 1, completer.calls, "completion must be attempted even with empty context")
	assert.Contains(t, completer.lastPrompt, "Context: .\n")
	assert.Equal(t, ApologyMessage, answer)
}

func TestAnswer_CompletionFaultYieldsApology(t *testing.T) {
	store := &fakeStore{results: []vectorstore.Result{{ID: "a", Score: 0.9, Text: "context"}}}
	completer := &fakeCompleter{err: fmt.Errorf("timeout")}
	engine := newTestEngine(store, completer)

	assert.Equal(t, ApologyMessage, engine.Answer(context.Background(), "query", ""))
}

func newTestEngine(store *fakeStore, completer *fakeCompleter) *Engine {
	retriever := NewRetriever(&fakeProvider{}, store, 3)
	return NewEngine(retriever, completer, "zain", "model-a", []string{"model-b", "model-c"})
}
