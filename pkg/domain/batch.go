package domain

import "time"

// BatchStatus は生成バッチのライフサイクル状態です。
// loading → completed / error のみ遷移し、そこからの遷移は削除だけです。
type BatchStatus string

const (
	BatchLoading   BatchStatus = "loading"
	BatchCompleted BatchStatus = "completed"
	BatchError     BatchStatus = "error"
)

// BatchPlaceholder は生成完了前の画像スロットを示す番兵値です。
const BatchPlaceholder = ""

// Batch は 1 回の論理的な生成要求を追跡する単位です。
// Images の要素数は作成時の要求枚数で固定され、以後はプレースホルダから
// 実 URL への置き換えのみが行われます。
type Batch struct {
	ID          string
	Images      []string
	Status      BatchStatus
	Date        time.Time
	ErrorMsg    string
	AspectRatio string
}
