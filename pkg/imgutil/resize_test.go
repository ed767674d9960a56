package imgutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeAndCompress(t *testing.T) {
	t.Run("上限内の画像は再エンコードせずそのまま返すこと", func(t *testing.T) {
		data := createSolidImageData(t, "png", 800, 600, color.RGBA{10, 10, 10, 255})
		got := ResizeAndCompress(data, 1024)
		assert.Equal(t, data, got)
	})

	t.Run("長辺が上限を超える画像はアスペクト比を保って縮小されること", func(t *testing.T) {
		data := createSolidImageData(t, "png", 2048, 1024, color.RGBA{10, 10, 10, 255})
		got := ResizeAndCompress(data, 1024)

		w, h, err := Dimensions(got)
		require.NoError(t, err)
		assert.Equal(t, 1024, w)
		assert.Equal(t, 512, h)
	})

	t.Run("縦長画像でも長辺基準で縮小されること", func(t *testing.T) {
		data := createSolidImageData(t, "png", 500, 2000, color.RGBA{10, 10, 10, 255})
		got := ResizeAndCompress(data, 1000)

		w, h, err := Dimensions(got)
		require.NoError(t, err)
		assert.Equal(t, 250, w)
		assert.Equal(t, 1000, h)
	})

	t.Run("デコード不能なバッファはそのまま返すこと", func(t *testing.T) {
		data := []byte("definitely not pixels")
		assert.Equal(t, data, ResizeAndCompress(data, 1024))
	})

	t.Run("maxDim がゼロ以下なら既定の上限を使うこと", func(t *testing.T) {
		data := createSolidImageData(t, "png", 2048, 2048, color.RGBA{10, 10, 10, 255})
		got := ResizeAndCompress(data, 0)

		w, h, err := Dimensions(got)
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxDimension, w)
		assert.Equal(t, DefaultMaxDimension, h)
	})
}
