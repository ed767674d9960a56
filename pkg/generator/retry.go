package generator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultMaxRetries は過負荷エラーに対する再試行回数の上限です。
	DefaultMaxRetries = 3
	// DefaultInitialDelay は再試行の初期待機時間です。試行ごとに倍増します。
	DefaultInitialDelay = 2 * time.Second
)

// Retry は op を実行し、失敗した場合はエラーを分類して扱いを変えます。
//
//   - ネットワーク・ペイロード系（"load failed" / "fetch failed"）は即時失敗。
//     構造的な問題であって一過性ではないため、再試行はかえってバグを隠します。
//   - 503 / "overloaded" は指数バックオフで maxRetries 回まで再試行。
//   - それ以外のエラーはそのまま伝播します。
func Retry[T any](ctx context.Context, op func() (T, error), maxRetries int, initialDelay time.Duration) (T, error) {
	var zero T

	delay := initialDelay
	for attempt := 0; ; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}

		if isPayloadError(err) {
			return zero, &PayloadError{Err: err}
		}
		if !isOverloadError(err) || attempt >= maxRetries {
			return zero, err
		}

		slog.Warn("プロバイダが過負荷のため再試行します",
			"attempt", attempt+1,
			"max_retries", maxRetries,
			"delay", delay,
		)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func isPayloadError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "load failed") || strings.Contains(msg, "fetch failed")
}

func isOverloadError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusServiceUnavailable {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "overloaded") || strings.Contains(msg, "503")
}
