package imgutil

import (
	"bytes"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ResizeAndCompress は長辺が maxDim を超える画像をアスペクト比を保って縮小し、
// 元フォーマットに合わせて再エンコードします。総ピクセル数が有界になるため、
// リモート API のペイロードサイズ超過を防げます。
//
// デコードに失敗したバッファはそのまま返します。劣化してでも生成を試みる方が
// パイプライン全体を止めるより良いためです（fail-open）。
func ResizeAndCompress(data []byte, maxDim int) []byte {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		// 上限内の画像は再エンコードせずそのまま使います。
		return data
	}

	longest := w
	if h > longest {
		longest = h
	}
	scale := float64(maxDim) / float64(longest)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	out, err := encodeAs(dst, format)
	if err != nil {
		return data
	}
	return out
}
