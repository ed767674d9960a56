package compositor

import (
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// garmentNouns はロール記述に使うカテゴリごとの英語名詞です。
var garmentNouns = map[domain.Category]string{
	domain.CategoryTop:       "top garment",
	domain.CategoryPants:     "pair of pants",
	domain.CategorySkirt:     "skirt",
	domain.CategoryDress:     "dress",
	domain.CategoryOuterwear: "outerwear piece",
	domain.CategoryShoes:     "pair of shoes",
	domain.CategorySocks:     "pair of socks",
	domain.CategoryHat:       "hat",
	domain.CategoryBag:       "bag",
	domain.CategoryGlasses:   "pair of glasses",
	domain.CategoryNecklace:  "necklace",
	domain.CategoryEarrings:  "pair of earrings",
	domain.CategoryWatch:     "watch",
	domain.CategoryBelt:      "belt",
	domain.CategoryScarf:     "scarf",
}

func garmentNoun(c domain.Category) string {
	if noun, ok := garmentNouns[c]; ok {
		return noun
	}
	return "clothing item"
}

// imagePart はバッファを genai.Part (InlineData) に変換します。
// MIME タイプが画像でないものは nil を返します。
func imagePart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	}
}

// styleFragments はスタイル選択を指示文フラグメントの列へ展開します。
// 空のフラグメント（デフォルト選択）は含めません。
func styleFragments(opts domain.StyleOptions) []string {
	var frags []string
	for _, f := range []string{
		opts.Gender.PromptFragment(),
		opts.Pose.PromptFragment(),
		opts.Fit.PromptFragment(),
		opts.Background.PromptFragment(),
	} {
		if f != "" {
			frags = append(frags, f)
		}
	}
	return frags
}
