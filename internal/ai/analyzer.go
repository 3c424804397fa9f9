package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"unimarket/internal/domain"

	"go.uber.org/zap"
)

var (
	// ErrAnalysis covers every failure of the analysis collaborator:
	// missing credentials, empty input, transport errors and malformed
	// responses all wrap it.
	ErrAnalysis = errors.New("ai analysis failed")
)

// AnalysisResult is the structured suggestion returned by the image
// appraiser. Condition and SuggestedPrice feed the pricing reconciler; the
// remaining fields overwrite the listing form directly.
type AnalysisResult struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Tags           []string         `json:"tags"`
	Condition      domain.Condition `json:"condition"`
	SuggestedPrice int              `json:"suggestedPrice"`
	PriceNote      string           `json:"priceNote"`
}

const appraiserPrompt = `You are a professional second-hand goods appraiser.
Analyze the attached photos and return listing metadata as JSON with the
fields title, description, category, tags (5 hashtags), condition (one of
NEW, LIKE_NEW, GOOD, FAIR), suggestedPrice (integer) and priceNote
(reasoning for the condition and price).

Pricing guidance relative to the original retail price:
- NEW: 90-95%
- LIKE_NEW: 80-85%
- GOOD: 60-70%
- FAIR: 40-50%

Base the estimate on the visible condition, brand value and the current
second-hand market.`

// Analyzer calls the Gemini generateContent API to suggest listing
// metadata from product photos.
type Analyzer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAnalyzer creates an Analyzer. baseURL has no trailing slash; tests
// point it at a local server.
func NewAnalyzer(apiKey, model, baseURL string, timeout time.Duration, logger *zap.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Analyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Transport: transport, Timeout: timeout},
		logger:  logger,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze submits normalized JPEG payloads and parses the structured
// suggestion out of the model's JSON reply.
func (a *Analyzer) Analyze(ctx context.Context, imagePayloads [][]byte) (*AnalysisResult, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrAnalysis)
	}
	if len(imagePayloads) == 0 {
		return nil, fmt.Errorf("%w: no images provided", ErrAnalysis)
	}

	parts := make([]part, 0, len(imagePayloads)+1)
	parts = append(parts, part{Text: appraiserPrompt})
	for _, payload := range imagePayloads {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(payload),
		}})
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrAnalysis, resp.StatusCode, snippet)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrAnalysis)
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	var result AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed result: %v", ErrAnalysis, err)
	}

	a.logger.Debug("Analysis completed",
		zap.Int("images", len(imagePayloads)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &result, nil
}
