package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"opioid-chatbot/internal/ai"
	"opioid-chatbot/internal/logger"
	"opioid-chatbot/utils"
)

const (
	promptPreamble = "Assume the user is always asking about opioids or related topics like overdose, " +
		"addiction, withdrawal, painkillers, fentanyl, heroin, and narcotics."

	InvalidQuestionAnswer    = "Please ask a valid question."
	IrrelevantQuestionAnswer = "Sorry, I can only answer questions related to opioids, addiction, overdose, or withdrawal."
	TooLongQuestionAnswer    = "Your question is too long. Please ask a shorter question."
	UpstreamErrorPrefix      = "ERROR:"
)

// Ask outcomes reported to the OutcomeRecorder.
const (
	OutcomeInvalid       = "invalid"
	OutcomeIrrelevant    = "irrelevant"
	OutcomeAnswered      = "answered"
	OutcomeUpstreamError = "upstream_error"
)

// OutcomeRecorder counts how each question was handled.
type OutcomeRecorder interface {
	RecordAskOutcome(ctx context.Context, outcome string)
}

// AnswerService gates questions on relevance and relays relevant ones to the model.
type AnswerService struct {
	generator ai.Generator
	document  *Document
	keywords  []string
	recorder  OutcomeRecorder
}

func NewAnswerService(generator ai.Generator, document *Document, keywords []string) *AnswerService {
	return &AnswerService{
		generator: generator,
		document:  document,
		keywords:  slices.Clone(keywords),
	}
}

// WithRecorder sets where outcomes are counted. Returns s for chaining.
func (s *AnswerService) WithRecorder(r OutcomeRecorder) *AnswerService {
	s.recorder = r
	return s
}

// BuildPrompt joins the preamble, the document text and the question.
func BuildPrompt(question, documentText string) string {
	var b strings.Builder
	b.Grow(len(promptPreamble) + len(documentText) + len(question) + 64)
	b.WriteString(promptPreamble)
	b.WriteString("\n\nHere is the document content:\n")
	b.WriteString(documentText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// Ask classifies the question and returns the answer for the caller.
// Every path produces a user-facing string; nothing is returned as an error.
func (s *AnswerService) Ask(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)

	if question == "" {
		s.record(ctx, OutcomeInvalid)
		return InvalidQuestionAnswer
	}

	if !IsRelevant(question, s.keywords) {
		s.record(ctx, OutcomeIrrelevant)
		return IrrelevantQuestionAnswer
	}

	return s.Answer(ctx, question)
}

// Answer sends the question with the document to the model. Failures are
// logged and turned into an answer starting with "ERROR:".
func (s *AnswerService) Answer(ctx context.Context, question string) string {
	start := time.Now()
	prompt := BuildPrompt(question, s.document.Text())

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error("Llama 2 API error",
			"error", err,
			"request_id", utils.RequestIDFromContext(ctx),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		s.record(ctx, OutcomeUpstreamError)
		return UpstreamErrorPrefix + " Failed to connect to Llama 2 instance. Details: " + err.Error()
	}

	logger.Debug("Llama 2 answer generated",
		"request_id", utils.RequestIDFromContext(ctx),
		"answer_chars", len(answer),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.record(ctx, OutcomeAnswered)
	return answer
}

func (s *AnswerService) record(ctx context.Context, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordAskOutcome(ctx, outcome)
	}
}
