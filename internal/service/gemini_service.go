package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"quiz-api/configs"
	"quiz-api/internal/models"
)

var (
	ErrEmptyPrompt   = errors.New("question text must not be empty")
	ErrEmptyResponse = errors.New("model returned no usable text")
)

// APIError is an error response from the Gemini API, carrying the upstream
// HTTP status so handlers can distinguish client faults from server faults.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error (status %d): %s", e.StatusCode, e.Body)
}

// GeminiService generates explanation and feedback text through the Gemini
// generateContent REST API.
type GeminiService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string

	maxExplanationTokens int
	maxFeedbackTokens    int
}

func NewGeminiService(cfg *configs.Config) *GeminiService {
	return &GeminiService{
		Client: &http.Client{
			Timeout: 120 * time.Second, // LLM responses can be slow
		},
		BaseURL:              cfg.GeminiBaseURL,
		APIKey:               cfg.GeminiAPIKey,
		Model:                cfg.GeminiModel,
		maxExplanationTokens: cfg.MaxExplanationTokens,
		maxFeedbackTokens:    cfg.MaxFeedbackTokens,
	}
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// GenerateExplanation produces a short Markdown explanation for one question.
func (g *GeminiService) GenerateExplanation(ctx context.Context, questionText string) (string, error) {
	if strings.TrimSpace(questionText) == "" {
		return "", ErrEmptyPrompt
	}

	log.Printf("Generating explanation for: %.50s...", questionText)

	prompt := buildExplanationPrompt(questionText)
	text, err := g.generate(ctx, prompt, 0.3, g.maxExplanationTokens)
	if err != nil {
		return "", err
	}

	log.Printf("Explanation generated, length: %d", len(text))
	return text, nil
}

// GenerateFeedback produces a Markdown study handout for the questions the
// user got wrong, or a congratulations message when everything was correct.
func (g *GeminiService) GenerateFeedback(ctx context.Context, req *models.FeedbackRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	incorrect := req.IncorrectQuestions()
	log.Printf("Generating feedback, incorrect: %d/%d", len(incorrect), req.UserAttempt.TotalQuestions)

	var prompt string
	if len(incorrect) == 0 {
		prompt = buildCongratulationsPrompt()
	} else {
		prompt = buildFeedbackPrompt(incorrect)
	}

	text, err := g.generate(ctx, prompt, 0.6, g.maxFeedbackTokens)
	if err != nil {
		return "", err
	}

	log.Printf("Feedback generated, length: %d", len(text))
	return text, nil
}

// TestConnection sends a tiny prompt to verify the API is reachable.
func (g *GeminiService) TestConnection(ctx context.Context) (string, error) {
	return g.generate(ctx, "Say 'Hello world'", 0.1, 10)
}

func (g *GeminiService) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	request := generateContentRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []contentPart{{Text: prompt}},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response generateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return extractText(&response)
}

// extractText pulls the generated text out of the first candidate's first
// content part.
func extractText(response *generateContentResponse) (string, error) {
	if len(response.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	parts := response.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildExplanationPrompt(questionText string) string {
	return fmt.Sprintf(`Explain clearly and concisely (100 words at most) the answer to the following general-knowledge question, as if you were a teacher. Use Markdown formatting:

Question: %s`, questionText)
}

func buildCongratulationsPrompt() string {
	return `Write a brief congratulations message in Markdown for a student who answered every question of a general-knowledge quiz correctly. 100 words at most. Include some motivation to keep learning.`
}

func buildFeedbackPrompt(incorrect []models.Question) string {
	var b strings.Builder
	b.WriteString(`You are an expert educator writing a **study handout** in Markdown to help a student review general-knowledge concepts.

**IMPORTANT**: The student will read this handout before retrying the quiz, so you must NOT state the answers explicitly or prominently, yet the answers should be subtly woven into the handout.

**Questions the student answered incorrectly:**
`)

	for i, q := range incorrect {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
	}

	b.WriteString(`

**Handout instructions:**
1. Write an educational newsletter-style document
2. Cover the TOPICS and CONCEPTS behind the incorrect questions
3. Do NOT reveal the correct answers explicitly or prominently, but do weave them subtly into the text
4. Provide relevant historical, geographical or cultural context
5. Include curious facts or complementary information
6. Use Markdown with titles, subtitles and lists
7. 500 words at most
8. Style: informative, educational and engaging
9. The goal is for the student to learn the concepts and do better on a second try

Write the study handout now:`)

	return b.String()
}
