// Package gemini はGoogle Gemini APIを使用した物件説明文の下書きクライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"rentease_backend/internal/feature/property/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// ErrEmptyDraft はモデルがテキストを返さなかった場合のエラーです。
var ErrEmptyDraft = errors.New("gemini returned an empty draft")

// GeminiDescriber はGoogle Gemini APIを使用して物件の説明文を生成します。
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

// GeminiDescriberがDescriberを実装していることをコンパイル時に検証します。
var _ usecase.Describer = (*GeminiDescriber)(nil)

// NewGeminiDescriber はGeminiDescriberの新しいインスタンスを生成します。
// cfg が nil の場合は環境変数（GOOGLE_API_KEY、または GOOGLE_GENAI_USE_VERTEXAI と
// GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION）とADCを使用します。
func NewGeminiDescriber(ctx context.Context, cfg *genai.ClientConfig, model string) (*GeminiDescriber, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDescriber{client: client, model: model}, nil
}

// Describe はプロンプトから説明文を生成します。
func (g *GeminiDescriber) Describe(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyDraft
	}
	return text, nil
}
