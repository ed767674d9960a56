package generator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/fitting-image-kit/pkg/compositor"
	"github.com/shouni/fitting-image-kit/pkg/domain"
	"github.com/shouni/fitting-image-kit/pkg/imgutil"
)

// GenerateFitting はモデル + 衣服アイテムの合成写真を生成します。
//
// NumberOfImages > 1 の場合はその枚数ぶんのリモート呼び出しを並列に発行し、
// i 枚目はベースシード + i を使います。完了順序は不定ですが、結果は常に
// リクエストのインデックス順で返します。中断された・画像が返らなかった
// 呼び出しの結果は除外し、1 枚も残らなければ ErrNoImageData で失敗します。
func (g *FittingGenerator) GenerateFitting(ctx context.Context, req domain.FittingRequest) (*domain.FittingResult, error) {
	if err := g.ensureAPIKey(ctx); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	parts, err := compositor.BuildFittingParts(normalizeFittingRequest(req))
	if err != nil {
		return nil, err
	}

	n := req.NumberOfImages
	if n <= 0 {
		n = 1
	}
	baseSeed := compositor.ResolveSeed(req.Seed)

	slog.Info("フィッティング生成を開始します",
		"model", g.model,
		"images", n,
		"aspect_ratio", req.AspectRatio,
		"base_seed", baseSeed,
	)

	results := make([]*domain.ImageResult, n)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return nil
			}

			seed := baseSeed + int64(i)
			resp, err := Retry(egCtx, func() (*gemini.Response, error) {
				return g.aiClient.GenerateWithParts(egCtx, g.model, parts, gemini.GenerateOptions{
					AspectRatio: req.AspectRatio,
					Seed:        &seed,
				})
			}, g.maxRetries, g.initialDelay)
			if err != nil {
				return err
			}
			if egCtx.Err() != nil {
				return nil
			}

			out, err := parseImageResult(resp, seed)
			if err != nil {
				// 画像なしの応答はこのスロットだけ落とし、他の並列結果を生かします。
				slog.Warn("並列生成の 1 枚が画像を返しませんでした", "index", i, "error", err)
				return nil
			}
			results[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	images := make([]domain.ImageResult, 0, n)
	for _, r := range results {
		if r != nil {
			images = append(images, *r)
		}
	}
	if len(images) == 0 {
		return nil, ErrNoImageData
	}

	return &domain.FittingResult{Images: images}, nil
}

// normalizeFittingRequest はリクエスト内の全ピクセルバッファを送信上限内に
// 正規化したコピーを返します。
func normalizeFittingRequest(req domain.FittingRequest) domain.FittingRequest {
	out := req

	if len(req.ModelImage) > 0 {
		out.ModelImage = imgutil.ResizeAndCompress(req.ModelImage, imgutil.DefaultMaxDimension)
	}

	out.Items = make(map[domain.Category]domain.ClothingItem, len(req.Items))
	for cat, item := range req.Items {
		if cat.IsConfig() {
			continue
		}
		item.Image = imgutil.ResizeAndCompress(item.Image, imgutil.DefaultMaxDimension)
		out.Items[cat] = item
	}

	out.ReferenceImages = make([][]byte, 0, len(req.ReferenceImages))
	for _, ref := range req.ReferenceImages {
		out.ReferenceImages = append(out.ReferenceImages, imgutil.ResizeAndCompress(ref, imgutil.DefaultMaxDimension))
	}

	return out
}
