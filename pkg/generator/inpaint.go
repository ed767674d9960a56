package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/fitting-image-kit/pkg/compositor"
	"github.com/shouni/fitting-image-kit/pkg/domain"
	"github.com/shouni/fitting-image-kit/pkg/imgutil"
)

// InpaintPadding はマスクのバウンディングボックスを切り出す際に各辺へ加える
// 余白の割合です。周囲のピクセルを少し含めることで継ぎ目が馴染みます。
const InpaintPadding = 0.2

// GenerateInpaint はマスクで指定された領域のみを再生成します。
//
// マスクは必ず二値化してから使い、塗られた領域が無ければネットワーク
// 呼び出し前に失敗します。リモートモデルには切り出し + コンテキスト画像を
// 送りますが、マスク外の保全はモデルを信用せず、最後の CompositeByMask が
// 元ピクセルで強制します。
func (g *FittingGenerator) GenerateInpaint(ctx context.Context, req domain.InpaintRequest) (*domain.InpaintResult, error) {
	if err := g.ensureAPIKey(ctx); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	mask, err := imgutil.BinarizeMask(req.Mask)
	if err != nil {
		return nil, fmt.Errorf("マスクの二値化に失敗しました: %w", err)
	}

	box, err := imgutil.FindMaskBoundingBox(mask, InpaintPadding)
	if err != nil {
		// ErrEmptyMask を含む。黙って進めると誤った領域を編集するため fail-loud。
		return nil, err
	}

	crop, err := imgutil.CropToBoundingBox(req.Image, box)
	if err != nil {
		return nil, err
	}
	contextImage := imgutil.ResizeAndCompress(req.Image, imgutil.DefaultMaxDimension)

	parts, err := compositor.BuildInpaintParts(crop, contextImage, req.Prompt)
	if err != nil {
		return nil, err
	}

	seed := compositor.ResolveSeed(req.Seed)
	aspectRatio := imgutil.DetectAspectRatio(crop)

	slog.Info("インペイント生成を開始します",
		"model", g.model,
		"box", box.String(),
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

	raw, err := parseImageResult(resp, seed)
	if err != nil {
		return nil, err
	}

	w, h, err := imgutil.Dimensions(req.Image)
	if err != nil {
		return nil, fmt.Errorf("元画像の寸法取得に失敗しました: %w", err)
	}
	placed, err := imgutil.PlaceRegionInCanvas(raw.Data, box, w, h)
	if err != nil {
		return nil, err
	}
	composited, err := imgutil.CompositeByMask(req.Image, placed, mask)
	if err != nil {
		return nil, err
	}

	slog.Info("インペイント合成が完了しました", "seed", seed)

	return &domain.InpaintResult{
		Composited: domain.ImageResult{
			Data:     composited,
			MimeType: "image/png",
			UsedSeed: seed,
		},
		Raw: *raw,
	}, nil
}
