package excerpt

import (
	"context"
	"errors"
	"strings"
)

// Prompt is a single system+user exchange sent to the model.
type Prompt struct {
	System string
	User   string
}

// LLMClient abstracts the model client so it can be replaced or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Settings is the model configuration handed to concrete implementations.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

const (
	defaultLimit = 160
	// Bodies are clipped before prompting; an excerpt never needs more.
	maxBodyPrompt = 4000
)

// Generator produces a short post excerpt from the document body.
type Generator struct {
	llm   LLMClient
	limit int
}

func NewGenerator(llm LLMClient) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Generator{llm: llm, limit: defaultLimit}, nil
}

// Generate asks the model for a one-paragraph excerpt and normalizes the
// answer to a single clamped line.
func (g *Generator) Generate(ctx context.Context, title, body string) (string, error) {
	raw, err := g.llm.Complete(ctx, buildPrompt(title, body))
	if err != nil {
		return "", err
	}
	out := postProcess(raw, g.limit)
	if out == "" {
		return "", errors.New("model returned an empty excerpt")
	}
	return out, nil
}

func buildPrompt(title, body string) Prompt {
	if len(body) > maxBodyPrompt {
		body = body[:maxBodyPrompt]
	}
	var user strings.Builder
	user.WriteString("Title: ")
	user.WriteString(title)
	user.WriteString("\n\n")
	user.WriteString(body)
	return Prompt{
		System: "You summarize blog posts. Reply with a single plain-text sentence suitable as the post excerpt. No markup, no quotes, no preamble.",
		User:   user.String(),
	}
}

// postProcess keeps the first non-empty line, strips heading markers and
// surrounding quotes, and clamps to limit on a word boundary.
func postProcess(raw string, limit int) string {
	var line string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			line = l
			break
		}
	}
	line = strings.TrimLeft(line, "# ")
	line = strings.Trim(line, `"'`)
	if len(line) <= limit {
		return line
	}
	clipped := line[:limit]
	if cut := strings.LastIndexAny(clipped, " \t"); cut > 0 {
		clipped = clipped[:cut]
	}
	return clipped
}
