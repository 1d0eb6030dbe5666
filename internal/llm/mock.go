package llm

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"regexp"
	"strings"
)

var defaultTemplates = []string{
	"This is a mock response to your query about: %TOPIC%",
	"Based on the provided information about %TOPIC%, here's what I can tell you:",
	"Regarding %TOPIC%, the key points are as follows:",
	"To address your question about %TOPIC%, consider the following:",
	"Here's a comprehensive answer about %TOPIC%:",
}

var nonWord = regexp.MustCompile(`[^\w]`)

var stopWords = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {}, "who": {},
	"is": {}, "are": {}, "the": {}, "a": {}, "an": {}, "do": {}, "does": {},
	"can": {}, "will": {}, "should": {},
}

// MockClient produces deterministic responses from the prompt content, for
// tests and offline operation. The same prompt always yields the same text.
type MockClient struct {
	templates []string
}

func NewMockClient(templates []string) *MockClient {
	if len(templates) == 0 {
		templates = defaultTemplates
	}
	return &MockClient{templates: templates}
}

func (c *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "Please provide a specific question or prompt for me to respond to.", nil
	}

	digest := md5.Sum([]byte(prompt))
	index := int(binary.BigEndian.Uint32(digest[:4])) % len(c.templates)

	topic := extractTopic(prompt)
	response := strings.ReplaceAll(c.templates[index], "%TOPIC%", topic)

	if len(prompt) > 100 {
		response += " This is a detailed response given the comprehensive nature of your query."
	} else if strings.Contains(prompt, "?") {
		response += " I hope this answers your question effectively."
	}

	return response, nil
}

// extractTopic picks the first few meaningful words from the prompt so mock
// answers read as if they address the question.
func extractTopic(prompt string) string {
	words := strings.Fields(strings.TrimSpace(prompt))
	if len(words) > 5 {
		words = words[:5]
	}

	var topicWords []string
	for _, w := range words {
		clean := nonWord.ReplaceAllString(strings.ToLower(w), "")
		if clean == "" {
			continue
		}
		if _, skip := stopWords[clean]; skip {
			continue
		}
		topicWords = append(topicWords, strings.Trim(w, ".,!?;:"))
		if len(topicWords) == 3 {
			break
		}
	}

	if len(topicWords) == 0 {
		return "the requested topic"
	}
	return strings.Join(topicWords, " ")
}
