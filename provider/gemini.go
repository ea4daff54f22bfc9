package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haneulab/thumbsmith-api/config"
	"github.com/haneulab/thumbsmith-api/provider/dto"
)

// PrimaryGeminiModel is the only model that accepts an imageSize hint.
const PrimaryGeminiModel = "gemini-3-pro-image-preview"

const (
	DefaultAspectRatio = "16:9"
	DefaultImageSize   = "1K"
)

// quotaKeywords classify provider error text as a quota/billing signal. The
// match is an informal substring heuristic; the API exposes no structured
// error code for this condition.
var quotaKeywords = []string{"quota", "rate limit", "billing", "free_tier", "please retry"}

type GeminiService struct {
	APIKey  string
	BaseURL string
	Model   string

	hc *http.Client
}

// InitGeminiService returns nil when no API key is configured. The generate
// handler reports that as a fixed 500 before calling out.
func InitGeminiService(cfg *config.EnvConfig) *GeminiService {
	if cfg.Gemini.APIKey == "" {
		return nil
	}

	return &GeminiService{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		hc:      &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateImage performs a single generateContent call requesting both text
// and image modalities. Transport failures return an error; provider-level
// failures come back as a result with OK=false so the caller can classify
// them. No retries are made.
func (s *GeminiService) GenerateImage(ctx context.Context, prompt, aspectRatio, imageSize string) (*dto.GenerateImageResult, error) {
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}

	imageConfig := dto.GeminiImageConfig{AspectRatio: aspectRatio}
	if s.Model == PrimaryGeminiModel {
		if imageSize == "" {
			imageSize = DefaultImageSize
		}
		imageConfig.ImageSize = imageSize
	}

	body, err := json.Marshal(dto.GeminiGenerateRequest{
		Contents: []dto.GeminiContent{
			{Role: "user", Parts: []dto.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: dto.GeminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig:        imageConfig,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.BaseURL, s.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result := &dto.GenerateImageResult{
		Status: resp.StatusCode,
		Model:  s.Model,
	}

	var parsed dto.GeminiGenerateResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.ErrorText = string(raw)
		if parsed.Error != nil && parsed.Error.Message != "" {
			result.ErrorText = parsed.Error.Message
		}
		return result, nil
	}

	result.OK = true
	if len(parsed.Candidates) > 0 && parsed.Candidates[0].Content != nil {
		result.Parts = parsed.Candidates[0].Content.Parts
	}

	return result, nil
}

// IsQuotaError reports whether a provider failure should be surfaced as a
// quota/rate-limit condition: a 429 status, or error text containing one of
// the known quota vocabulary keywords.
func IsQuotaError(status int, errText string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	lower := strings.ToLower(errText)
	for _, keyword := range quotaKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// LastImagePart selects the last part that is not provider reasoning and
// carries inline image data. Providers emit reasoning and text parts before
// the final image, so scanning starts from the end.
func LastImagePart(parts []dto.GeminiPart) *dto.GeminiPart {
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part.Thought {
			continue
		}
		inline := part.Inline()
		if inline == nil || inline.Data == "" {
			continue
		}
		if strings.HasPrefix(inline.Mime(), "image/") {
			return &parts[i]
		}
	}
	return nil
}

// JoinTextParts concatenates every text-bearing part in original order,
// newline-joined and trimmed. Returns "" when no part carries text.
func JoinTextParts(parts []dto.GeminiPart) string {
	var texts []string
	for _, part := range parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// ExtensionForMime maps an image MIME type to a stored file extension.
// Unrecognized types fall back to png.
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
