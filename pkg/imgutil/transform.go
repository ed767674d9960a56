package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// tiltDamping はチルト角から垂直スキュー量へ変換する際の減衰定数です。
// 2D アフィン変換では本物の 3D チルト（透視変換）は表現できないため、
// 見た目が破綻しない程度にスキューを抑えるための近似値です。
const tiltDamping = 0.3

// ComputeFillScale は W×H のキャンバスを rotationDeg 回転 + tiltDeg 相当の
// 垂直スキューで描画しても、四隅に背景が露出しない最小の一様スケールを返します。
//
// 各キャンバス隅を中心相対座標へ移し、逆回転・逆スキューで写像した点が
// 半幅・半高さの範囲に収まるために必要な倍率を求め、全隅・両軸の最大値を
// 採用します。
func ComputeFillScale(width, height int, rotationDeg, tiltDeg float64) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}

	rad := rotationDeg * math.Pi / 180
	skew := math.Tan(tiltDeg*math.Pi/180) * tiltDamping
	sin, cos := math.Sincos(rad)

	halfW := float64(width) / 2
	halfH := float64(height) / 2

	scale := 1.0
	corners := [4][2]float64{
		{-halfW, -halfH},
		{halfW, -halfH},
		{-halfW, halfH},
		{halfW, halfH},
	}
	for _, c := range corners {
		// 逆回転
		rx := c[0]*cos + c[1]*sin
		ry := -c[0]*sin + c[1]*cos
		// 逆スキュー調整後の Y
		sy := ry - skew*rx

		scale = math.Max(scale, math.Abs(rx)/halfW)
		scale = math.Max(scale, math.Abs(sy)/halfH)
	}
	return scale
}

// zoomFactor はユーザー指定のズーム値（%）を倍率へ変換します。
func zoomFactor(zoom int) float64 {
	switch {
	case zoom > 0:
		return 1 + float64(zoom)/100
	case zoom < 0:
		return 1 / (1 + float64(-zoom)/100)
	}
	return 1
}

// ApplyGeometricTransform は回転・チルト・ズームを合成した幾何変換を適用します。
// 変換の合成順序は 中心移動 → 回転 → フィルスケール → 垂直スキュー → ズーム で、
// この順序を変えると既存データと見た目の互換性が崩れます。
//
// 背景は黒で塗り潰されるため、フィルスケールが不完全でも透明の縁は出ません。
// 3 パラメータがすべてゼロなら再エンコードを避けて入力をそのまま返します。
// デコードに失敗したバッファもそのまま返します（fail-open）。
func ApplyGeometricTransform(data []byte, rotationDeg, tiltDeg float64, zoom int) []byte {
	if rotationDeg == 0 && tiltDeg == 0 && zoom == 0 {
		return data
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return data
	}

	fill := 1.0
	if rotationDeg != 0 || tiltDeg != 0 {
		fill = ComputeFillScale(w, h, rotationDeg, tiltDeg)
	}
	skew := math.Tan(tiltDeg*math.Pi/180) * tiltDamping
	z := zoomFactor(zoom)
	rad := rotationDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)

	src := toRGBA(img)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	cx := float64(w) / 2
	cy := float64(h) / 2
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5 - cx

			// 出力ピクセルを順変換の逆写像で元画像座標に戻します。
			rx := px*cos + py*sin
			ry := -px*sin + py*cos
			rx /= fill
			ry /= fill
			ry -= skew * rx
			rx /= z
			ry /= z

			sx := rx + cx - 0.5
			sy := ry + cy - 0.5
			if sx < 0 || sy < 0 || sx > float64(w-1) || sy > float64(h-1) {
				continue
			}
			dst.SetRGBA(x, y, bilinearRGBA(src, sx, sy))
		}
	}

	out, err := encodeAs(dst, format)
	if err != nil {
		return data
	}
	return out
}
