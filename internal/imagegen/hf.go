package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storyboardgen/internal/storyboard"
	"storyboardgen/pkg/prompts"
)

const (
	hfBaseURL      = "https://api-inference.huggingface.co/models"
	defaultModel   = "stabilityai/stable-diffusion-xl-base-1.0"
	defaultSteps   = 25
	defaultTimeout = 120 * time.Second
)

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	NumInferenceSteps int `json:"num_inference_steps"`
}

// HFClient implements Generator using the Hugging Face Inference API. One
// request per call; there are no retries, a failure is the caller's cue to
// use a placeholder.
type HFClient struct {
	token      string
	httpClient *http.Client
	model      string
	steps      int
	prompts    *prompts.Prompts
	baseURL    string
}

type HFOptions struct {
	Model string
	Steps int
}

func NewHFClient(token string, p *prompts.Prompts, opts HFOptions) *HFClient {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	steps := opts.Steps
	if steps == 0 {
		steps = defaultSteps
	}

	return &HFClient{
		token: token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		model:   model,
		steps:   steps,
		prompts: p,
		baseURL: hfBaseURL,
	}
}

// Generate renders the scene prompt and requests a single image. The
// response body is the raw image bytes on success.
func (c *HFClient) Generate(ctx context.Context, description, style string) ([]byte, error) {
	if style == "" {
		style = DefaultStyle
	}

	prompt, err := c.prompts.RenderImage(prompts.ImageParams{
		Description: description,
		Style:       style,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	body, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{NumInferenceSteps: c.steps},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storyboard.ErrImageProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", storyboard.ErrImageProvider, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", storyboard.ErrImageProvider, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image response", storyboard.ErrImageProvider)
	}

	return data, nil
}
