package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"pickwise/domain"
	"pickwise/pkg/config"
	"strings"
	"time"
)

// Client talks to the Gemini REST API for intent extraction, filter
// derivation, and reply generation. All JSON outputs are parsed strictly;
// anything that fails to decode comes back as an error so the caller can
// degrade instead of acting on half-parsed data.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	embeddingModel string
}

func NewClient(cfg config.GeminiConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		apiKey:         cfg.ApiKey,
		baseURL:        strings.TrimRight(cfg.BaseUrl, "/"),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	SystemInstr      *content          `json:"systemInstruction,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
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

func (c *Client) DeriveIntent(ctx context.Context, history, memory, query string) (domain.Intent, error) {
	prompt := fmt.Sprintf(intentPrompt, history, memory, query)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("failed to derive intent: %w", err)
	}

	var intent domain.Intent
	if err := decodeJSON(raw, &intent); err != nil {
		return domain.Intent{}, fmt.Errorf("failed to parse intent response: %w", err)
	}

	return intent, nil
}

func (c *Client) DeriveFilter(ctx context.Context, history, query string, intent domain.Intent) (domain.LaptopFilter, error) {
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return domain.LaptopFilter{}, fmt.Errorf("failed to marshal intent: %w", err)
	}

	prompt := fmt.Sprintf(filterPrompt, history, string(intentJSON), query)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return domain.LaptopFilter{}, fmt.Errorf("failed to derive filter: %w", err)
	}

	var filter domain.LaptopFilter
	if err := decodeJSON(raw, &filter); err != nil {
		return domain.LaptopFilter{}, fmt.Errorf("failed to parse filter response: %w", err)
	}

	return filter, nil
}

func (c *Client) GenerateReply(ctx context.Context, history, memory, query string, intent domain.Intent, candidates []domain.RankedCandidate) (string, error) {
	var sb strings.Builder
	for _, cand := range candidates {
		fmt.Fprintf(&sb, "- %s %s | RM%.0f | CPU %s | RAM %dGB %s | GPU %s | %.2fkg | Pick Score %d\n",
			cand.Laptop.Brand, cand.Laptop.ProductName, cand.Laptop.PriceRM,
			cand.Laptop.ProcessorName, cand.Laptop.RAMGB, cand.Laptop.RAMType,
			cand.Laptop.GPUModel, cand.Laptop.WeightKg, cand.PickScore)
	}

	prompt := fmt.Sprintf(replyPrompt, history, memory, intent.IntentSummary, sb.String(), query)

	answer, err := c.generate(ctx, prompt, false)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("empty reply from model")
	}

	return answer, nil
}

func (c *Client) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{Temperature: 0.4},
	}
	if asJSON {
		reqBody.GenerationConfig.ResponseMimeType = "application/json"
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in response")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// decodeJSON extracts the outermost JSON object from model output and
// unmarshals it into the target type. Models sometimes wrap JSON in prose
// or markdown fences even when asked not to.
func decodeJSON(raw string, v interface{}) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return errors.New("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("malformed JSON in model output: %w", err)
	}

	return nil
}
