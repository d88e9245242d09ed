package rag

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// ApologyMessage is the fixed user-facing text returned when the
// completion call fails. A failed completion never surfaces as a fault.
const ApologyMessage = "Apologies, I am unable to assist you due to technical reasons. Please visit the website."

// Completer is the slice of the completion client consumed here.
type Completer interface {
	Complete(ctx context.Context, prompt, model string, fallbackModels []string) (string, error)
}

// Engine composes retrieval, prompt assembly and completion into one
// answer. Missing context degrades to an empty context block; a failed
// completion degrades to ApologyMessage.
type Engine struct {
	retriever      *Retriever
	completer      Completer
	namespace      string
	primaryModel   string
	fallbackModels []string
}

func NewEngine(retriever *Retriever, completer Completer, namespace, primaryModel string, fallbackModels []string) *Engine {
	return &Engine{
		retriever:      retriever,
		completer:      completer,
		namespace:      namespace,
		primaryModel:   primaryModel,
		fallbackModels: fallbackModels,
	}
}

func (e *Engine) Answer(ctx context.Context, query, chatHistory string) string {
	results := e.retriever.RetrieveContext(ctx, e.namespace, query)
	if len(results) == 0 {
		logger.Info("No context retrieved for query", zap.String("query", query))
	}

	prompt := BuildPrompt(results, query, chatHistory)

	answer, err := e.completer.Complete(ctx, prompt, e.primaryModel, e.fallbackModels)
	if err != nil {
		logger.Error("Completion failed", zap.Error(err))
		return ApologyMessage
	}
	return answer
}
