package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
	"talenthub-api/pkg/models"
)

// Extractor turns free-form resume text into a structured candidate profile
// using Anthropic's Claude.
type Extractor struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewExtractor creates a new resume extractor instance.
func NewExtractor(cfg *config.Config) *Extractor {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &Extractor{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractProfile sends the resume text to Claude and parses the structured
// profile from its JSON reply.
func (e *Extractor) ExtractProfile(ctx context.Context, resumeText string) (*models.ExtractedProfile, error) {
	startTime := time.Now()

	// Rough estimation: 3 chars per token
	maxContentLength := e.config.LLM.MaxTokens * 3
	if len(resumeText) > maxContentLength {
		resumeText = resumeText[:maxContentLength] + "..."
		e.logger.Debug("Resume text truncated to fit token limits", nil)
	}

	prompt := buildExtractionPrompt(resumeText)

	response, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(e.config.LLM.Model),
		MaxTokens:   int64(e.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(e.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	profile, err := parseResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	e.logger.Info("Resume extraction completed", map[string]interface{}{
		"skills_found":    len(profile.Skills),
		"processing_time": time.Since(startTime).String(),
	})
	return profile, nil
}

// IsHealthy reports whether the extractor is usable.
func (e *Extractor) IsHealthy() error {
	if e.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}
	return nil
}

func buildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are a resume analyzer. Extract structured candidate information from the provided resume text and return it as a JSON object.

Return a valid JSON object with exactly these fields:

{
  "skills": ["array of strings - technical and professional skills"],
  "summary": "string - a 2-3 sentence professional summary",
  "experience_years": number - total years of professional experience as integer (0 if unclear),
  "education_level": "string - one of: high_school, associate, bachelor, master, doctorate, other"
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. If information is not found, use empty string "" for strings, empty array [] for arrays, and 0 for numbers
3. Use "other" for education that does not map onto the listed levels
4. Normalize skill names (e.g. "ReactJS" stays as written, do not invent skills)

RESUME TEXT:
%s`, resumeText)
}

func parseResponse(response *anthropic.Message) (*models.ExtractedProfile, error) {
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	// Strip markdown code fences if present
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	var profile models.ExtractedProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response from Claude: %w", err)
	}

	if profile.EducationLevel != "" {
		if _, ok := models.EducationLevel(profile.EducationLevel).Ordinal(); !ok {
			profile.EducationLevel = string(models.EducationOther)
		}
	}
	return &profile, nil
}
