package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// extractionPrompt instructs the model to return structured transactions.
// The response is requested as a bare JSON array; incidental code fences are
// stripped before parsing regardless.
const extractionPrompt = `Analyze this bank statement or receipt.
Extract all individual transactions.
For each transaction, identify:
- date (in YYYY-MM-DD format)
- description
- amount (as a positive number)
- type (income or expense)
- category (one of: Food, Transport, Housing, Entertainment, Utilities, Shopping, Health, Income, Other)

Respond with only a JSON array of transaction objects using exactly those field names.`

// GeminiExtractor implements Extractor against the Google Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *logrus.Logger
}

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string, logger *logrus.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = logrus.New()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

// Extract implements Extractor with a single generate call. The call is not
// retried; any failure is returned as-is for the pipeline to surface.
func (g *GeminiExtractor) Extract(ctx context.Context, payload string, mimeType string) ([]RawTransaction, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid document payload: %w", err)
	}

	g.log.WithFields(logrus.Fields{
		"mime_type": mimeType,
		"bytes":     len(data),
	}).Debug("Requesting transaction extraction")

	resp, err := g.model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	records, err := DecodeResponse(b.String())
	if err != nil {
		// An unparsable response is an empty result, not a crash.
		g.log.WithError(err).Warn("Extraction response was not valid JSON")
		return nil, nil
	}

	g.log.WithField("count", len(records)).Debug("Extraction response parsed")
	return records, nil
}
