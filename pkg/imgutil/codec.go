package imgutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
)

const (
	// DefaultMaxDimension はリモート API へ送る画像の長辺の上限です。
	DefaultMaxDimension = 1024
	// JPEGQuality は非可逆再エンコード時の固定品質です。
	JPEGQuality = 85
)

// ErrEmptyMask はマスクに塗られた領域が 1 ピクセルも無いことを示します。
// この場合に処理を続行すると誤った領域を編集してしまうため、必ず呼び出し元へ
// 通知します（fail-loud）。
var ErrEmptyMask = errors.New("no painted region found in mask")

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dimensions は画像全体をデコードせずに幅と高さを返します。
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// encodeAs は元フォーマットに合わせて再エンコードします。
// 非可逆品質を持つのは JPEG のみで、それ以外は可逆の PNG に寄せます。
func encodeAs(img image.Image, format string) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	if format == "jpeg" {
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: JPEGQuality})
	} else {
		err = png.Encode(buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			rgba.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// bilinearRGBA は (sx, sy) の周囲 4 ピクセルを線形補間してサンプリングします。
func bilinearRGBA(src *image.RGBA, sx, sy float64) color.RGBA {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	x0 := int(sx)
	y0 := int(sy)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x0 > w-1 {
		x0 = w - 1
	}
	if y0 > h-1 {
		y0 = h - 1
	}
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}

	fx := sx - float64(x0)
	fy := sy - float64(y0)
	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}

	c00 := src.RGBAAt(x0, y0)
	c10 := src.RGBAAt(x1, y0)
	c01 := src.RGBAAt(x0, y1)
	c11 := src.RGBAAt(x1, y1)

	lerp := func(a, b uint8, t float64) float64 {
		return float64(a)*(1-t) + float64(b)*t
	}
	blend := func(a00, a10, a01, a11 uint8) uint8 {
		top := lerp(a00, a10, fx)
		bottom := lerp(a01, a11, fx)
		return uint8(top*(1-fy) + bottom*fy + 0.5)
	}

	return color.RGBA{
		R: blend(c00.R, c10.R, c01.R, c11.R),
		G: blend(c00.G, c10.G, c01.G, c11.G),
		B: blend(c00.B, c10.B, c01.B, c11.B),
		A: blend(c00.A, c10.A, c01.A, c11.A),
	}
}
