package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/justsurfingit/job-application-tracker/internal/apperror"
	"github.com/justsurfingit/job-application-tracker/internal/dtos"
	"github.com/justsurfingit/job-application-tracker/internal/metrics"
	"github.com/justsurfingit/job-application-tracker/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPostingLength is counted in characters.
const maxPostingLength = 20000

const postingExtractionPrompt = `
You are a Job Data Extraction Agent. Analyze the raw HTML/text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "companyName": "Name of the company",
    "role": "Job title",
    "jobDescription": "A clean summary of responsibilities and requirements, without HTML",
    "jobCategory": "TECH for software/engineering/data roles, otherwise NON_TECH",
    "seniority": "One of NONE, JUNIOR, MID, SENIOR",
    "salary": "Yearly salary as a number if explicitly mentioned (lower bound of a range), otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not guess.

### SOURCE URL:
%s

### RAW CONTENT:
%s
`

// LLMService turns a pasted job posting into a draft application. The draft
// is never stored; the client submits it through the normal create path.
type LLMService struct {
	Client llms.Model
}

func NewLLMService(client llms.Model) *LLMService {
	return &LLMService{Client: client}
}

// NewGeminiService builds the service on Google's Gemini API.
func NewGeminiService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewLLMService(llm), nil
}

type postingDraft struct {
	CompanyName    *string  `json:"companyName"`
	Role           *string  `json:"role"`
	JobDescription *string  `json:"jobDescription"`
	JobCategory    *string  `json:"jobCategory"`
	Seniority      *string  `json:"seniority"`
	Salary         *float64 `json:"salary"`
}

// ExtractApplicationDraft asks the model for a draft of the posting in
// rawHTML. sourceURL is optional context for the model.
func (s *LLMService) ExtractApplicationDraft(ctx context.Context, rawHTML, sourceURL string) (dtos.ApplicationPayload, error) {
	rawHTML = truncateRunes(rawHTML, maxPostingLength)
	if sourceURL == "" {
		sourceURL = "unknown"
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(postingExtractionPrompt, sourceURL, rawHTML))
	if err != nil {
		metrics.PostingExtractions.WithLabelValues("llm_error").Inc()
		return dtos.ApplicationPayload{}, apperror.External("Posting extraction failed.", err)
	}

	var draft postingDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		metrics.PostingExtractions.WithLabelValues("bad_output").Inc()
		slog.Warn("LLM returned unparseable draft", "error", err)
		return dtos.ApplicationPayload{}, apperror.External("Posting extraction returned an unreadable result.", err)
	}

	metrics.PostingExtractions.WithLabelValues("success").Inc()
	return draft.payload(), nil
}

// payload keeps only values the create path would accept.
func (d postingDraft) payload() dtos.ApplicationPayload {
	p := dtos.ApplicationPayload{
		CompanyName:    nonEmpty(d.CompanyName),
		Role:           nonEmpty(d.Role),
		JobDescription: nonEmpty(d.JobDescription),
	}
	if c := nonEmpty(d.JobCategory); c != nil && models.JobCategory(strings.ToUpper(*c)).Valid() {
		p.JobCategory = upper(c)
	}
	if sen := nonEmpty(d.Seniority); sen != nil && models.Seniority(strings.ToUpper(*sen)).Valid() {
		p.Seniority = upper(sen)
	}
	if d.Salary != nil && *d.Salary >= 0 {
		p.Salary = d.Salary
	}
	if p.JobCategory != nil && models.JobCategory(*p.JobCategory) == models.JobCategoryNonTech {
		none := string(models.StageNone)
		p.TechnicalStage = &none
	}
	return p
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func upper(s *string) *string {
	u := strings.ToUpper(*s)
	return &u
}
