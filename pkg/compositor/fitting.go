package compositor

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// BuildFittingParts はフィッティング要求を順序付きの画像パーツ列 + 末尾の
// 指示ブロックへ組み立てます。
//
// 画像の並び順とロール記述はリモートモデルの挙動を直接左右するため、
// モデル画像 → 衣服（固定カテゴリ順）→ 参照画像 の順序を厳守します。
// 参照画像のロールは専用のモデル画像が有るか無いかで変わります。有る場合は
// スタイル参照（人物は無視）、無い場合は人物候補として扱わせます。
func BuildFittingParts(req domain.FittingRequest) ([]*genai.Part, error) {
	var parts []*genai.Part
	var roles []string
	index := 1

	hasModel := len(req.ModelImage) > 0
	if hasModel {
		p := imagePart(req.ModelImage)
		if p == nil {
			return nil, fmt.Errorf("モデル画像が有効な画像ではありません")
		}
		parts = append(parts, p)
		roles = append(roles, fmt.Sprintf(
			"Image %d: the person. This is the identity and face source. "+
				"If it shows only a face or headshot, extend it into a full body "+
				"matching the requested pose, keeping the skin tone consistent with the face.",
			index))
		index++
	}

	for _, cat := range domain.GarmentOrder {
		item, ok := req.Items[cat]
		if !ok || len(item.Image) == 0 {
			continue
		}
		p := imagePart(item.Image)
		if p == nil {
			continue
		}
		parts = append(parts, p)

		role := fmt.Sprintf(
			"Image %d: a %s. Extract the garment only and ignore any face or person in this image.",
			index, garmentNoun(cat))
		if item.Length != "" {
			role += fmt.Sprintf(" The garment length is %s.", item.Length)
		}
		roles = append(roles, role)
		index++
	}

	for _, ref := range req.ReferenceImages {
		p := imagePart(ref)
		if p == nil {
			continue
		}
		parts = append(parts, p)

		if hasModel {
			roles = append(roles, fmt.Sprintf(
				"Image %d: a style and pose reference. Ignore the identity of anyone in it.",
				index))
		} else {
			roles = append(roles, fmt.Sprintf(
				"Image %d: a candidate identity source for the person to dress.",
				index))
		}
		index++
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("生成に使用できる画像がありません")
	}

	var sb strings.Builder
	sb.WriteString("Create a realistic photo of the person wearing all of the provided clothing items together.\n")
	for _, role := range roles {
		sb.WriteString(role)
		sb.WriteString("\n")
	}
	for _, frag := range styleFragments(req.Options) {
		sb.WriteString(strings.ToUpper(frag[:1]) + frag[1:] + ".\n")
	}
	if req.Prompt != "" {
		sb.WriteString("Additional instructions: " + req.Prompt + "\n")
	}
	sb.WriteString("Keep the lighting, proportions and fabric textures natural and consistent.")

	parts = append(parts, &genai.Part{Text: sb.String()})
	return parts, nil
}
