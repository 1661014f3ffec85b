package excerpt

import "context"

// MockLLM is a canned implementation for local runs and tests; it never
// calls an external model.
type MockLLM struct {
	Text string
	Err  error
}

func (m MockLLM) Complete(_ context.Context, _ Prompt) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
