package studio

import (
	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// State はスタジオ全体の UI 可視状態です。
// Reducer 関数は常に新しい State を返し、既存の State を書き換えません。
// オーケストレーターには State 全体ではなく必要なスライスだけを渡します。
type State struct {
	CurrentView     domain.View
	Views           map[domain.View]domain.ViewState
	Batches         []domain.Batch
	Options         domain.StyleOptions
	AspectRatio     string
	ImageSize       string
	Prompt          string
	ReferenceImages [][]byte
	Seed            int64
	RandomSeed      bool
	NumberOfImages  int
	LastError       string
}

// NewState は既定値で初期化した State を返します。
func NewState() State {
	return State{
		CurrentView: domain.ViewFront,
		Views: map[domain.View]domain.ViewState{
			domain.ViewFront: {Items: map[domain.Category]domain.ClothingItem{}},
			domain.ViewBack:  {Items: map[domain.Category]domain.ClothingItem{}},
		},
		AspectRatio:    "3:4",
		ImageSize:      "1K",
		RandomSeed:     true,
		NumberOfImages: 1,
	}
}

func cloneViews(views map[domain.View]domain.ViewState) map[domain.View]domain.ViewState {
	out := make(map[domain.View]domain.ViewState, len(views))
	for v, vs := range views {
		vs.Items = vs.CloneItems()
		out[v] = vs
	}
	return out
}

// SetCurrentView は表示中のビューを切り替えます。
func SetCurrentView(s State, view domain.View) State {
	s.CurrentView = view
	return s
}

// SetModelImage はモデル画像を設定します。
// モデル画像は両ビューで共有する運用のため、FRONT / BACK の両方へ伝播します。
func SetModelImage(s State, image []byte) State {
	views := cloneViews(s.Views)
	for v, vs := range views {
		vs.ModelImage = image
		views[v] = vs
	}
	s.Views = views
	return s
}

// PutItem は指定ビューへアイテムを装着します。同カテゴリの既存アイテムは
// 置き換えられます（1 カテゴリ 1 アイテムの不変条件）。
func PutItem(s State, view domain.View, item domain.ClothingItem) State {
	views := cloneViews(s.Views)
	vs := views[view]
	vs.Items[item.Category] = item
	views[view] = vs
	s.Views = views
	return s
}

// RemoveItem は指定ビューからカテゴリのアイテムを外します。
func RemoveItem(s State, view domain.View, category domain.Category) State {
	views := cloneViews(s.Views)
	vs := views[view]
	delete(vs.Items, category)
	views[view] = vs
	s.Views = views
	return s
}

// SetOptions はスタイル選択をまとめて更新します。
func SetOptions(s State, opts domain.StyleOptions) State {
	s.Options = opts
	return s
}

// SetAspectRatio は生成アスペクト比を更新します。
func SetAspectRatio(s State, ratio string) State {
	s.AspectRatio = ratio
	return s
}

// SetImageSize は品質ティアを更新します。
func SetImageSize(s State, size string) State {
	s.ImageSize = size
	return s
}

// SetPrompt は自由入力プロンプトを更新します。
func SetPrompt(s State, prompt string) State {
	s.Prompt = prompt
	return s
}

// AddReferenceImage は参照画像を末尾へ追加します。
func AddReferenceImage(s State, image []byte) State {
	refs := append([][]byte(nil), s.ReferenceImages...)
	s.ReferenceImages = append(refs, image)
	return s
}

// RemoveReferenceImage は指定インデックスの参照画像を取り除きます。
func RemoveReferenceImage(s State, index int) State {
	if index < 0 || index >= len(s.ReferenceImages) {
		return s
	}
	refs := append([][]byte(nil), s.ReferenceImages...)
	s.ReferenceImages = append(refs[:index], refs[index+1:]...)
	return s
}

// SetSeed は固定シードを設定し、ランダムシードを解除します。
func SetSeed(s State, seed int64) State {
	s.Seed = seed
	s.RandomSeed = false
	return s
}

// SetRandomSeed はランダムシードの有効・無効を切り替えます。
func SetRandomSeed(s State, random bool) State {
	s.RandomSeed = random
	return s
}

// SetNumberOfImages は要求枚数を更新します。
func SetNumberOfImages(s State, n int) State {
	if n < 1 {
		n = 1
	}
	s.NumberOfImages = n
	return s
}

// SetError は一時的なエラースロットを設定します。
func SetError(s State, msg string) State {
	s.LastError = msg
	return s
}

// ClearError はエラースロットを空にします。
func ClearError(s State) State {
	s.LastError = ""
	return s
}

// seedForRequest は State のシードポリシーをリクエスト用の *int64 へ変換します。
// ランダム指定なら nil（ResolveSeed が乱数を引く）、固定なら値を返します。
func seedForRequest(s State) *int64 {
	if s.RandomSeed {
		return nil
	}
	seed := s.Seed
	return &seed
}
