package domain

// ClothingItem は 1 つの衣服・小物アイテムです。
// Image は生のエンコード済みピクセルバッファ（PNG/JPEG 等）を保持します。
type ClothingItem struct {
	ID       string
	Category Category
	Image    []byte
	Name     string
	Length   string // 丈の指定（任意。"cropped" / "regular" / "long" など）
}

// View は前面・背面のどちらの着せ替えビューかを示します。
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
)

// ViewState は 1 ビュー分の状態です。
// モデル画像は両ビューで共有する運用のため、片方に設定されたらもう片方へ伝播します。
type ViewState struct {
	ModelImage []byte
	Items      map[Category]ClothingItem
}

// CloneItems は Items マップの浅いコピーを返します。
// Reducer が新しい状態を返すための補助です。
func (v ViewState) CloneItems() map[Category]ClothingItem {
	items := make(map[Category]ClothingItem, len(v.Items))
	for k, item := range v.Items {
		items[k] = item
	}
	return items
}

// StyleOptions はフィッティング生成の全体的なスタイル選択です。
type StyleOptions struct {
	Fit        FitStyle
	Pose       PoseStyle
	Background BackgroundStyle
	Gender     Gender
}

// FittingRequest はモデル + 衣服アイテムの合成生成要求です。
type FittingRequest struct {
	ModelImage      []byte
	Items           map[Category]ClothingItem
	ReferenceImages [][]byte
	Options         StyleOptions
	Prompt          string
	AspectRatio     string
	ImageSize       string // 品質ティア（"1K" / "2K" など）
	NumberOfImages  int
	Seed            *int64
}

// EditRequest は既存写真のレタッチ生成要求です。
// 各スライダーは 0〜100 で、50 が「変更なし」の中立値です。
type EditRequest struct {
	Image           []byte
	ReferenceImages [][]byte
	Lighting        int
	Shadow          int
	Relighting      int
	Prompt          string
	Rotation        float64
	Tilt            float64
	Zoom            int
	Seed            *int64
}

// InpaintRequest はマスク領域のみを再生成する要求です。
type InpaintRequest struct {
	Image  []byte
	Mask   []byte
	Prompt string
	Seed   *int64
}

// ImageResult は生成された 1 枚の画像とそのメタデータです。
type ImageResult struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}

// FittingResult は 1 回のフィッティング要求の全結果です。
// Images はリクエストのインデックス順（シード昇順）に並びます。
type FittingResult struct {
	Images []ImageResult
}

// InpaintResult はインペイント結果です。
// Composited がマスク合成済みの正（信頼できる）出力で、
// Raw はリモートモデルの出力そのもの（デバッグ・比較用）です。
type InpaintResult struct {
	Composited ImageResult
	Raw        ImageResult
}
