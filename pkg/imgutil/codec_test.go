package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := createSolidImageData(t, "png", 10, 10, color.RGBA{255, 0, 0, 255})

		got, err := CompressToJPEG(pngData, 75)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(got) == 0 {
			t.Error("expected output data, but got empty")
		}

		// 出力がJPEGとしてデコード可能か確認
		_, format, err := image.Decode(bytes.NewReader(got))
		if err != nil {
			t.Errorf("failed to decode output image: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected format jpeg, got %s", format)
		}
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		invalidData := []byte("this is not an image")
		_, err := CompressToJPEG(invalidData, 75)
		if err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})

	t.Run("Quality設定によってサイズが変化すること", func(t *testing.T) {
		input := createSolidImageData(t, "png", 64, 64, color.RGBA{80, 120, 200, 255})

		highQuality, _ := CompressToJPEG(input, 100)
		lowQuality, _ := CompressToJPEG(input, 10)

		if len(lowQuality) >= len(highQuality) {
			t.Errorf("low quality size (%d) should be smaller than high quality size (%d)", len(lowQuality), len(highQuality))
		}
	})
}

func TestDimensions(t *testing.T) {
	t.Run("フルデコードせずに幅と高さを取得できること", func(t *testing.T) {
		data := createSolidImageData(t, "png", 320, 180, color.RGBA{0, 255, 0, 255})

		w, h, err := Dimensions(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w != 320 || h != 180 {
			t.Errorf("expected 320x180, got %dx%d", w, h)
		}
	})

	t.Run("不正なデータではエラーを返すこと", func(t *testing.T) {
		_, _, err := Dimensions([]byte("broken"))
		if err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})
}
