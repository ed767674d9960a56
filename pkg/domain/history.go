package domain

import "time"

// GenerationMode は履歴に記録する生成の種別です。
type GenerationMode string

const (
	ModeFitting GenerationMode = "fitting"
	ModeEdit    GenerationMode = "edit"
	ModeInpaint GenerationMode = "inpainting"
)

// GenerationMeta は生成 1 回分のメタデータバッグです。
// アセットストアと往復（保存・復元）できるよう、安定したフィールドのみ持ちます。
type GenerationMeta struct {
	Mode           GenerationMode
	Prompt         string
	Fit            FitStyle
	Pose           PoseStyle
	Background     BackgroundStyle
	Gender         Gender
	Seed           int64
	ReferenceCount int
	Model          string
}

// HistoryItem は成功した生成 1 件の不変レコードです。
// 生成成功時のみ作成され、明示的な削除かコレクションのリセットで消えます。
type HistoryItem struct {
	ID        string
	Image     []byte
	Meta      GenerationMeta
	Liked     bool
	CreatedAt time.Time
}
