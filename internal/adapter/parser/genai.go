// Package parser extracts raw transactions from free text and receipt
// photos using Gemini. Model output is untrusted; everything it returns
// goes through domain normalization before reaching the ledger.
package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/iho/roomledger/internal/domain"
)

const extractionPrompt = `Extract every purchase from the input as a JSON array.
Each element has the fields:
  "date": purchase date as YYYY-MM-DD, or "" if unknown
  "description": short description of the purchase
  "amount": positive number, the total paid
  "category": one of Rent, Groceries, Utilities, Internet, Fun/Entertainment, Household Items, Miscellaneous
  "confidence": number between 0 and 1, how certain you are about this record
Return only the JSON array. Return [] if no purchases are present.`

// GeminiParser implements usecase.TransactionParser.
type GeminiParser struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiParser creates a new GeminiParser.
func NewGeminiParser(ctx context.Context, model string, logger zerolog.Logger) (*GeminiParser, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiParser{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// ParseText extracts raw transactions from free-form text, e.g. a pasted
// bank statement or a "beers 12 bucks yesterday" message.
func (p *GeminiParser) ParseText(ctx context.Context, text string) ([]domain.RawTransaction, error) {
	parts := []*genai.Part{
		{Text: extractionPrompt},
		{Text: text},
	}

	return p.generate(ctx, parts)
}

// ParseImage extracts raw transactions from a receipt photo.
func (p *GeminiParser) ParseImage(ctx context.Context, imageJPEG []byte) ([]domain.RawTransaction, error) {
	parts := []*genai.Part{
		{Text: extractionPrompt},
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: imageJPEG}},
	}

	return p.generate(ctx, parts)
}

func (p *GeminiParser) generate(ctx context.Context, parts []*genai.Part) ([]domain.RawTransaction, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	contents := []*genai.Content{{Parts: parts, Role: genai.RoleUser}}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, nil
	}

	var transactions []domain.RawTransaction
	if err := json.Unmarshal([]byte(raw), &transactions); err != nil {
		p.logger.Warn().Err(err).Str("model", p.model).Msg("model returned malformed transaction JSON")
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	return transactions, nil
}
