package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// PartsGenerator は go-gemini-client のマルチパート呼び出しを抽象化します。gemini.GenerativeModel がこれを満たします。
type PartsGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ClientAdapter は gemini.GenerativeModel を ContentGenerator として扱えるようにします。
// 応答は RawResponse をそのまま返すため、ブロック理由や終了理由の判定は ParseResponse が行います。
type ClientAdapter struct {
	client PartsGenerator
}

var _ ContentGenerator = (*ClientAdapter)(nil)

// NewClientAdapter は ClientAdapter の新しいインスタンスを生成します。
func NewClientAdapter(client PartsGenerator) (*ClientAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) は必須です")
	}
	return &ClientAdapter{client: client}, nil
}

// NewGeminiClient は go-gemini-client を初期化し、ClientAdapter で包んで返します。
func NewGeminiClient(ctx context.Context, apiKey string) (*ClientAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY は必須です")
	}
	aiClient, err := gemini.NewClient(ctx, gemini.Config{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return NewClientAdapter(aiClient)
}

// GenerateContent は contents の Part を順序どおり1つのリクエストにまとめて送信します。
// GenerateOptions には応答モダリティの指定が無いため、config の ResponseModalities は送信されず、画像モデル既定の出力に従います。
func (a *ClientAdapter) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var parts []*genai.Part
	for _, c := range contents {
		if c == nil {
			continue
		}
		parts = append(parts, c.Parts...)
	}

	opts := gemini.GenerateOptions{}
	if config != nil && config.SystemInstruction != nil {
		for _, p := range config.SystemInstruction.Parts {
			if p != nil && p.Text != "" {
				opts.SystemPrompt = p.Text
				break
			}
		}
	}

	resp, err := a.client.GenerateWithParts(ctx, model, parts, opts)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return resp.RawResponse, nil
}
