package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quiz-api/internal/models"
)

func newTestGeminiService(baseURL string) *GeminiService {
	return &GeminiService{
		Client:               &http.Client{Timeout: 5 * time.Second},
		BaseURL:              baseURL,
		APIKey:               "test-key",
		Model:                "gemini-2.5-flash",
		maxExplanationTokens: 1000,
		maxFeedbackTokens:    1500,
	}
}

func geminiTextResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestExtractText(t *testing.T) {
	testCases := []struct {
		name     string
		response generateContentResponse
		want     string
		wantErr  bool
	}{
		{
			name: "first part of first candidate",
			response: generateContentResponse{Candidates: []candidate{
				{Content: content{Parts: []contentPart{{Text: "first"}, {Text: "second"}}}},
				{Content: content{Parts: []contentPart{{Text: "other candidate"}}}},
			}},
			want: "first",
		},
		{
			name:     "no candidates",
			response: generateContentResponse{},
			wantErr:  true,
		},
		{
			name:     "no parts",
			response: generateContentResponse{Candidates: []candidate{{Content: content{}}}},
			wantErr:  true,
		},
		{
			name:     "blank text",
			response: generateContentResponse{Candidates: []candidate{{Content: content{Parts: []contentPart{{Text: "   "}}}}}},
			wantErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractText(&tc.response)
			if tc.wantErr {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Errorf("Expected ErrEmptyResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildExplanationPrompt(t *testing.T) {
	prompt := buildExplanationPrompt("What is the capital of France?")
	if !strings.Contains(prompt, "Question: What is the capital of France?") {
		t.Errorf("Prompt does not embed the question: %q", prompt)
	}
	if !strings.Contains(prompt, "Markdown") {
		t.Errorf("Prompt does not ask for Markdown: %q", prompt)
	}
}

func TestBuildFeedbackPrompt(t *testing.T) {
	incorrect := []models.Question{
		{ID: "1", Question: "What is the capital of France?"},
		{ID: "2", Question: "Who painted the Mona Lisa?"},
	}

	prompt := buildFeedbackPrompt(incorrect)

	if !strings.Contains(prompt, "1. What is the capital of France?") {
		t.Errorf("Prompt missing first incorrect question")
	}
	if !strings.Contains(prompt, "2. Who painted the Mona Lisa?") {
		t.Errorf("Prompt missing second incorrect question")
	}
	if !strings.Contains(prompt, "NOT reveal the correct answers") {
		t.Errorf("Prompt missing the no-explicit-answers instruction")
	}
}

func TestGenerateExplanation(t *testing.T) {
	var captured generateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("Missing API key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiTextResponse("**Paris** is the capital of France.")))
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)

	explanation, err := g.GenerateExplanation(context.Background(), "What is the capital of France?")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if explanation != "**Paris** is the capital of France." {
		t.Errorf("Unexpected explanation: %q", explanation)
	}

	if captured.GenerationConfig.Temperature != 0.3 {
		t.Errorf("Expected temperature 0.3, got %v", captured.GenerationConfig.Temperature)
	}
	if captured.GenerationConfig.MaxOutputTokens != 1000 {
		t.Errorf("Expected 1000 max tokens, got %d", captured.GenerationConfig.MaxOutputTokens)
	}
	if len(captured.Contents) != 1 || captured.Contents[0].Role != "user" {
		t.Errorf("Expected a single user turn, got %+v", captured.Contents)
	}
}

func TestGenerateExplanationEmptyText(t *testing.T) {
	g := newTestGeminiService("http://unused.invalid")

	if _, err := g.GenerateExplanation(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Expected ErrEmptyPrompt, got %v", err)
	}
}

func TestGenerateExplanationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	g := newTestGeminiService(server.URL)

	_, err := g.GenerateExplanation(context.Background(), "What is the capital of France?")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", apiErr.StatusCode)
	}
}

func TestGenerateFeedbackPromptSelection(t *testing.T) {
	questions := []models.Question{
		{ID: "1", Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: 0},
		{ID: "2", Question: "Q2", Options: []string{"A", "B"}, CorrectAnswer: 1},
	}

	testCases := []struct {
		name       string
		answers    []int
		wantInBody string
	}{
		{"perfect attempt gets congratulations", []int{0, 1}, "congratulations"},
		{"missed questions get study handout", []int{1, 1}, "study handout"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var captured generateContentRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&captured)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(geminiTextResponse("some feedback")))
			}))
			defer server.Close()

			g := newTestGeminiService(server.URL)

			req := &models.FeedbackRequest{
				Questions:   questions,
				UserAttempt: models.UserAttempt{Score: 0, TotalQuestions: 2, Answers: tc.answers},
			}
			if _, err := g.GenerateFeedback(context.Background(), req); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			prompt := captured.Contents[0].Parts[0].Text
			if !strings.Contains(prompt, tc.wantInBody) {
				t.Errorf("Expected prompt to contain %q, got %q", tc.wantInBody, prompt)
			}
			if captured.GenerationConfig.Temperature != 0.6 {
				t.Errorf("Expected temperature 0.6, got %v", captured.GenerationConfig.Temperature)
			}
			if captured.GenerationConfig.MaxOutputTokens != 1500 {
				t.Errorf("Expected 1500 max tokens, got %d", captured.GenerationConfig.MaxOutputTokens)
			}
		})
	}
}

func TestGenerateFeedbackValidation(t *testing.T) {
	g := newTestGeminiService("http://unused.invalid")

	req := &models.FeedbackRequest{
		Questions:   []models.Question{{ID: "1", Question: "Q1", Options: []string{"A", "B"}}},
		UserAttempt: models.UserAttempt{TotalQuestions: 2, Answers: []int{0}},
	}
	if _, err := g.GenerateFeedback(context.Background(), req); !errors.Is(err, models.ErrTotalMismatch) {
		t.Errorf("Expected ErrTotalMismatch, got %v", err)
	}
}
