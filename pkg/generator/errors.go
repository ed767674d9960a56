package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAPIKey は認証情報ストアに API キーが存在しないことを示します。
	// ネットワーク呼び出しを一切行う前に検出して失敗させます。
	ErrNoAPIKey = errors.New("API key is not configured")

	// ErrCancelled は協調的キャンセルによる中断を示します。
	// 呼び出し元はこれをエラーバナー等に出さず、黙って破棄する必要があります。
	ErrCancelled = errors.New("generation cancelled")

	// ErrNoImageData はプロバイダが応答したものの画像が含まれていなかった
	// ことを示します。トランスポートエラーとは区別されるハード失敗です。
	ErrNoImageData = errors.New("no image data in response")
)

// PayloadError は "load failed" / "fetch failed" 系のネットワーク・ペイロード
// エラーです。経験的に非圧縮の巨大画像が原因であることが多く、一過性では
// ないため再試行しません。
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("画像の送信に失敗しました。画像サイズ、またはネットワーク接続を確認してください: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
