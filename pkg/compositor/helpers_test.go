package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// テスト用の有効な PNG バッファを作成するヘルパー
func createTinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 60), uint8(y * 60), 128, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode dummy png: %v", err)
	}
	return buf.Bytes()
}
