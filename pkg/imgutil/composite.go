package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// CropToBoundingBox は指定した矩形の部分バッファを切り出して PNG で返します。
func CropToBoundingBox(data []byte, box image.Rectangle) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("切り出し元画像のデコードに失敗しました: %w", err)
	}

	box = box.Intersect(img.Bounds())
	if box.Empty() {
		return nil, fmt.Errorf("切り出し範囲が画像の外です: %v", box)
	}

	out := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(out, out.Bounds(), img, box.Min, draw.Src)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("切り出し結果のエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// PlaceRegionInCanvas は編集済みの部分バッファを元の矩形位置へ描き戻した
// フルサイズ画像を返します。矩形の外はすべて黒で、後段の CompositeByMask が
// 本来のピクセルで置き換えるまでの番兵です。
func PlaceRegionInCanvas(region []byte, box image.Rectangle, width, height int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(region))
	if err != nil {
		return nil, fmt.Errorf("貼り戻し画像のデコードに失敗しました: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	// リモートモデルが寸法を変えて返すことがあるため矩形サイズへ合わせます。
	target := box.Intersect(canvas.Bounds())
	if target.Empty() {
		return nil, fmt.Errorf("貼り戻し範囲がキャンバスの外です: %v", box)
	}
	xdraw.ApproxBiLinear.Scale(canvas, target, img, img.Bounds(), xdraw.Src, nil)

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, canvas); err != nil {
		return nil, fmt.Errorf("貼り戻し結果のエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// CompositeByMask はマスク値 m = チャンネル/255 を係数に
// original·(1−m) + edited·m のピクセル単位ブレンドを行います。
// マスク外のピクセルは original がそのまま残るため、リモートモデルの出力を
// マスク外で信用する必要がありません。「実際に変わった範囲」の唯一の正です。
func CompositeByMask(original, edited, mask []byte) ([]byte, error) {
	origImg, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("元画像のデコードに失敗しました: %w", err)
	}

	b := origImg.Bounds()
	w, h := b.Dx(), b.Dy()

	editedRGBA, err := decodeScaled(edited, w, h)
	if err != nil {
		return nil, fmt.Errorf("編集画像の準備に失敗しました: %w", err)
	}
	maskRGBA, err := decodeScaled(mask, w, h)
	if err != nil {
		return nil, fmt.Errorf("マスクの準備に失敗しました: %w", err)
	}

	orig := toRGBA(origImg)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := orig.RGBAAt(x, y)
			e := editedRGBA.RGBAAt(x, y)
			m := float64(maskRGBA.RGBAAt(x, y).R) / 255

			out.SetRGBA(x, y, color.RGBA{
				R: blendChannel(o.R, e.R, m),
				G: blendChannel(o.G, e.G, m),
				B: blendChannel(o.B, e.B, m),
				A: o.A,
			})
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("合成結果のエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateMaskedPreview は選択領域に赤系のティントを乗せた 1 枚のプレビューを
// 返します。別チャンネルの画像を用意しなくても、人間にもモデルにも選択範囲が
// 一目で分かるようにするためのものです。
func CreateMaskedPreview(original, mask []byte) ([]byte, error) {
	origImg, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("元画像のデコードに失敗しました: %w", err)
	}

	b := origImg.Bounds()
	w, h := b.Dx(), b.Dy()

	maskRGBA, err := decodeScaled(mask, w, h)
	if err != nil {
		return nil, fmt.Errorf("マスクの準備に失敗しました: %w", err)
	}

	orig := toRGBA(origImg)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := orig.RGBAAt(x, y)
			m := float64(maskRGBA.RGBAAt(x, y).R) / 255

			r := 0.5*float64(o.R) + 200*m
			if r > 255 {
				r = 255
			}
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(r + 0.5),
				G: uint8(float64(o.G)*(1-0.7*m) + 0.5),
				B: uint8(float64(o.B)*(1-0.7*m) + 0.5),
				A: o.A,
			})
		}
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		return nil, fmt.Errorf("プレビューのエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

func blendChannel(o, e uint8, m float64) uint8 {
	return uint8(float64(o)*(1-m) + float64(e)*m + 0.5)
}

// decodeScaled はバッファをデコードし、必要なら指定寸法へリサンプリングします。
func decodeScaled(data []byte, w, h int) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return toRGBA(img), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}
