package dto

type GeminiGenerateRequest struct {
	Contents         []GeminiContent        `json:"contents"`
	GenerationConfig GeminiGenerationConfig `json:"generationConfig"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	ResponseModalities []string          `json:"responseModalities"`
	ImageConfig        GeminiImageConfig `json:"imageConfig"`
}

type GeminiImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// GeminiPart is one fragment of a candidate response. Parts flagged as
// thought carry provider reasoning and are excluded from user-facing output.
// Inline data arrives as camelCase or snake_case depending on the API
// frontend, so both spellings are accepted.
type GeminiPart struct {
	Text          string            `json:"text,omitempty"`
	Thought       bool              `json:"thought,omitempty"`
	InlineData    *GeminiInlineData `json:"inlineData,omitempty"`
	InlineDataAlt *GeminiInlineData `json:"inline_data,omitempty"`
}

// Inline returns whichever inline-data spelling is populated.
func (p *GeminiPart) Inline() *GeminiInlineData {
	if p.InlineData != nil {
		return p.InlineData
	}
	return p.InlineDataAlt
}

type GeminiInlineData struct {
	MimeType    string `json:"mimeType,omitempty"`
	MimeTypeAlt string `json:"mime_type,omitempty"`
	Data        string `json:"data,omitempty"`
}

// Mime returns whichever MIME type spelling is populated.
func (d *GeminiInlineData) Mime() string {
	if d.MimeType != "" {
		return d.MimeType
	}
	return d.MimeTypeAlt
}

type GeminiGenerateResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *GeminiError      `json:"error,omitempty"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content,omitempty"`
}

type GeminiError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// GenerateImageResult is the outcome of one generateContent call. OK mirrors
// the HTTP success of the provider call; the caller classifies failures.
type GenerateImageResult struct {
	OK        bool
	Status    int
	Model     string
	Parts     []GeminiPart
	ErrorText string
}
