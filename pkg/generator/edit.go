package generator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/fitting-image-kit/pkg/compositor"
	"github.com/shouni/fitting-image-kit/pkg/domain"
	"github.com/shouni/fitting-image-kit/pkg/imgutil"
)

// GenerateEdit は既存写真のレタッチを生成します。
// 幾何変換（回転・チルト・ズーム）はリモート送信前にクライアント側で
// 適用し、アスペクト比は元画像から検出して構図を引き継ぎます。
func (g *FittingGenerator) GenerateEdit(ctx context.Context, req domain.EditRequest) (*domain.ImageResult, error) {
	if err := g.ensureAPIKey(ctx); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	transformed := imgutil.ApplyGeometricTransform(req.Image, req.Rotation, req.Tilt, req.Zoom)
	transformed = imgutil.ResizeAndCompress(transformed, imgutil.DefaultMaxDimension)

	normalized := req
	normalized.ReferenceImages = make([][]byte, 0, len(req.ReferenceImages))
	for _, ref := range req.ReferenceImages {
		normalized.ReferenceImages = append(normalized.ReferenceImages, imgutil.ResizeAndCompress(ref, imgutil.DefaultMaxDimension))
	}

	parts, err := compositor.BuildEditParts(normalized, transformed)
	if err != nil {
		return nil, err
	}

	seed := compositor.ResolveSeed(req.Seed)
	aspectRatio := imgutil.DetectAspectRatio(req.Image)

	slog.Info("レタッチ生成を開始します",
		"model", g.model,
		"aspect_ratio", aspectRatio,
		"seed", seed,
	)

	resp, err := Retry(ctx, func() (*gemini.Response, error) {
		return g.aiClient.GenerateWithParts(ctx, g.model, parts, gemini.GenerateOptions{
			AspectRatio: aspectRatio,
			Seed:        &seed,
		})
	}, g.maxRetries, g.initialDelay)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	return parseImageResult(resp, seed)
}
