package generator

import (
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// parseImageResult は Gemini のレスポンスから最初の画像パーツを取り出します。
// 現在の仕様では最初の候補 (Candidate) のみを利用します。
func parseImageResult(resp *gemini.Response, seed int64) (*domain.ImageResult, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("%w: 有効な応答がありませんでした", ErrNoImageData)
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageResult{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("%w (FinishReason: %s)", ErrNoImageData, candidate.FinishReason)
	}

	return nil, ErrNoImageData
}
