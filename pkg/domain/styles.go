package domain

// FitStyle は衣服の着こなし（シルエット）の選択肢です。
type FitStyle string

const (
	FitDefault   FitStyle = "default"
	FitSlim      FitStyle = "slim"
	FitRegular   FitStyle = "regular"
	FitOversized FitStyle = "oversized"
	FitTuckedIn  FitStyle = "tucked_in"
)

// PromptFragment は生成指示文に埋め込む英語フラグメントを返します。
func (f FitStyle) PromptFragment() string {
	switch f {
	case FitSlim:
		return "wearing the clothes in a slim, fitted silhouette"
	case FitRegular:
		return "wearing the clothes in a regular, relaxed silhouette"
	case FitOversized:
		return "wearing the clothes in an oversized, loose silhouette"
	case FitTuckedIn:
		return "with tops neatly tucked in"
	}
	return ""
}

// PoseStyle はモデルのポーズの選択肢です。
type PoseStyle string

const (
	PoseDefault  PoseStyle = "default"
	PoseStanding PoseStyle = "standing"
	PoseWalking  PoseStyle = "walking"
	PoseSitting  PoseStyle = "sitting"
	PoseLeaning  PoseStyle = "leaning"
)

func (p PoseStyle) PromptFragment() string {
	switch p {
	case PoseStanding:
		return "standing upright facing the camera"
	case PoseWalking:
		return "walking naturally as in a street snap"
	case PoseSitting:
		return "sitting on a simple stool"
	case PoseLeaning:
		return "leaning casually against a wall"
	}
	return ""
}

// BackgroundStyle は背景の選択肢です。
type BackgroundStyle string

const (
	BackgroundDefault BackgroundStyle = "default"
	BackgroundStudio  BackgroundStyle = "studio"
	BackgroundStreet  BackgroundStyle = "street"
	BackgroundBeach   BackgroundStyle = "beach"
	BackgroundIndoor  BackgroundStyle = "indoor"
)

func (b BackgroundStyle) PromptFragment() string {
	switch b {
	case BackgroundStudio:
		return "in front of a clean, seamless studio background"
	case BackgroundStreet:
		return "on a city street with soft natural light"
	case BackgroundBeach:
		return "on a bright beach at golden hour"
	case BackgroundIndoor:
		return "in a minimal, softly lit interior"
	}
	return ""
}

// Gender はモデルの性別指定です。未指定の場合はモデル画像に従います。
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
)

func (g Gender) PromptFragment() string {
	switch g {
	case GenderFemale:
		return "the model is a woman"
	case GenderMale:
		return "the model is a man"
	}
	return ""
}
