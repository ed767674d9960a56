package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeURL(t *testing.T) {
	t.Run("公開アドレスの https は許可されること", func(t *testing.T) {
		ok, err := IsSafeURL("https://93.184.216.34/image.png")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ループバックは拒否されること", func(t *testing.T) {
		ok, err := IsSafeURL("http://127.0.0.1/secret")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("プライベートアドレスは拒否されること", func(t *testing.T) {
		ok, _ := IsSafeURL("http://192.168.1.10/internal")
		assert.False(t, ok)

		ok, _ = IsSafeURL("http://10.0.0.5/internal")
		assert.False(t, ok)
	})

	t.Run("http 以外のスキームは拒否されること", func(t *testing.T) {
		ok, err := IsSafeURL("file:///etc/passwd")
		assert.Error(t, err)
		assert.False(t, ok)

		ok, _ = IsSafeURL("gopher://example.com")
		assert.False(t, ok)
	})

	t.Run("パースできない URL は拒否されること", func(t *testing.T) {
		ok, err := IsSafeURL("://not a url")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
