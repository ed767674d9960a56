package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// binarizeThreshold は輝度の二値化しきい値です。255 の 25% に置いた低めの値で、
// ブラシの跡が少しでも見えるピクセルは「選択済み」として扱います。
const binarizeThreshold = 64

// maskSelectThreshold はバウンディングボックス探索時の赤チャンネルしきい値です。
const maskSelectThreshold = 128

// BinarizeMask はマスクを純粋な白黒（各チャンネル 0 か 255）に二値化します。
// アンチエイリアスされたブラシ境界の半透明が下流のブレンドへ漏れるのを防ぐため、
// 合成前のマスクは必ずこの関数を通す必要があります。冪等です。
func BinarizeMask(mask []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(mask))
	if err != nil {
		return nil, fmt.Errorf("マスクのデコードに失敗しました: %w", err)
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			lum := (int(r>>8) + int(g>>8) + int(bl>>8)) / 3

			var v uint8
			if lum > binarizeThreshold {
				v = 255
			}
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("マスクのエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// FindMaskBoundingBox は赤チャンネルがしきい値を超えるピクセルの範囲を探し、
// 各辺を padding（0.15 なら 15%）ぶん広げた矩形を返します。
// 塗られた領域が無い場合は ErrEmptyMask を返します。黙って全域を編集して
// しまうよりユーザーへ「未選択」を伝えるべきだからです。
func FindMaskBoundingBox(mask []byte, padding float64) (image.Rectangle, error) {
	img, _, err := image.Decode(bytes.NewReader(mask))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("マスクのデコードに失敗しました: %w", err)
	}

	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if int(r>>8) > maskSelectThreshold {
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, ErrEmptyMask
	}

	padX := int(float64(maxX-minX+1) * padding)
	padY := int(float64(maxY-minY+1) * padding)

	box := image.Rect(minX-padX, minY-padY, maxX+1+padX, maxY+1+padY)
	return box.Intersect(b), nil
}
