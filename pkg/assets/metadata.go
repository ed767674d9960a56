package assets

import (
	"strconv"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// メタデータバッグのキー。保存済みアセットとの互換のため変更できません。
const (
	metaKeyMode       = "mode"
	metaKeyPrompt     = "prompt"
	metaKeyFit        = "fit"
	metaKeyPose       = "pose"
	metaKeyBackground = "background"
	metaKeyGender     = "gender"
	metaKeySeed       = "seed"
	metaKeyRefCount   = "reference_count"
	metaKeyModel      = "model"
)

// MetadataFromGeneration は生成メタデータをアセットストア用の
// 文字列マップへ変換します。
func MetadataFromGeneration(meta domain.GenerationMeta) map[string]string {
	return map[string]string{
		metaKeyMode:       string(meta.Mode),
		metaKeyPrompt:     meta.Prompt,
		metaKeyFit:        string(meta.Fit),
		metaKeyPose:       string(meta.Pose),
		metaKeyBackground: string(meta.Background),
		metaKeyGender:     string(meta.Gender),
		metaKeySeed:       strconv.FormatInt(meta.Seed, 10),
		metaKeyRefCount:   strconv.Itoa(meta.ReferenceCount),
		metaKeyModel:      meta.Model,
	}
}

// GenerationFromMetadata は文字列マップから生成メタデータを復元します。
// 数値フィールドが壊れている場合はゼロ値に倒します。
func GenerationFromMetadata(m map[string]string) domain.GenerationMeta {
	seed, _ := strconv.ParseInt(m[metaKeySeed], 10, 64)
	refCount, _ := strconv.Atoi(m[metaKeyRefCount])

	return domain.GenerationMeta{
		Mode:           domain.GenerationMode(m[metaKeyMode]),
		Prompt:         m[metaKeyPrompt],
		Fit:            domain.FitStyle(m[metaKeyFit]),
		Pose:           domain.PoseStyle(m[metaKeyPose]),
		Background:     domain.BackgroundStyle(m[metaKeyBackground]),
		Gender:         domain.Gender(m[metaKeyGender]),
		Seed:           seed,
		ReferenceCount: refCount,
		Model:          m[metaKeyModel],
	}
}
