package excerpt

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen, err := NewGenerator(MockLLM{Text: "\n\n# A tidy summary of the post.\n\nSecond paragraph ignored."})
	if err != nil {
		t.Fatal(err)
	}
	got, err := gen.Generate(context.Background(), "Title", "body")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "A tidy summary of the post." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerateClampsLongAnswers(t *testing.T) {
	long := strings.Repeat("word ", 100)
	gen, err := NewGenerator(MockLLM{Text: long})
	if err != nil {
		t.Fatal(err)
	}
	got, err := gen.Generate(context.Background(), "Title", "body")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) > defaultLimit {
		t.Errorf("excerpt length = %d, want <= %d", len(got), defaultLimit)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("excerpt %q ends mid-separator", got)
	}
}

func TestGenerateModelError(t *testing.T) {
	gen, err := NewGenerator(MockLLM{Err: errors.New("quota exceeded")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(context.Background(), "Title", "body"); err == nil {
		t.Error("Generate() succeeded, want model error")
	}
}

func TestGenerateEmptyAnswer(t *testing.T) {
	gen, err := NewGenerator(MockLLM{Text: "  \n \n"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(context.Background(), "Title", "body"); err == nil {
		t.Error("Generate() succeeded on an empty answer")
	}
}

func TestNewGeneratorRequiresClient(t *testing.T) {
	if _, err := NewGenerator(nil); err == nil {
		t.Error("NewGenerator(nil) succeeded")
	}
}

func TestNewFromSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Settings
		wantErr bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "openai ok", cfg: &Settings{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"}},
		{name: "openai missing key", cfg: &Settings{Provider: "openai", Model: "m"}, wantErr: true},
		{name: "deepseek needs base url", cfg: &Settings{Provider: "deepseek", Model: "m", APIKey: "k"}, wantErr: true},
		{name: "deepseek ok", cfg: &Settings{Provider: "deepseek", Model: "m", APIKey: "k", BaseURL: "https://api.example.com"}},
		{name: "unknown provider", cfg: &Settings{Provider: "acme", Model: "m", APIKey: "k"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromSettings(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFromSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
