package compositor

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// SliderNeutral はスライダーの中立値です。この値のままの項目については
// 指示を一切出しません。触れていないスライダーについてモデルが勝手な変更を
// 加えるのを防ぐためです。
const SliderNeutral = 50

// BuildEditParts はレタッチ要求を編集対象画像 + 参照画像 + 指示ブロックへ
// 組み立てます。transformed には幾何変換（回転・チルト・ズーム）適用済みの
// バッファを渡します。
func BuildEditParts(req domain.EditRequest, transformed []byte) ([]*genai.Part, error) {
	target := imagePart(transformed)
	if target == nil {
		return nil, fmt.Errorf("編集対象が有効な画像ではありません")
	}

	parts := []*genai.Part{target}
	var roles []string
	roles = append(roles, "Image 1: the photo to edit. Preserve the person's identity, pose and clothing.")

	index := 2
	for _, ref := range req.ReferenceImages {
		p := imagePart(ref)
		if p == nil {
			continue
		}
		parts = append(parts, p)
		roles = append(roles, fmt.Sprintf(
			"Image %d: a style and lighting reference only. Do not copy the identity of anyone in it.",
			index))
		index++
	}

	var sb strings.Builder
	sb.WriteString("Retouch the first photo.\n")
	for _, role := range roles {
		sb.WriteString(role)
		sb.WriteString("\n")
	}
	for _, instr := range sliderInstructions(req) {
		sb.WriteString(instr)
		sb.WriteString("\n")
	}
	if req.Prompt != "" {
		sb.WriteString("Additional instructions: " + req.Prompt + "\n")
	}
	sb.WriteString("Do not change anything that was not requested.")

	parts = append(parts, &genai.Part{Text: sb.String()})
	return parts, nil
}

// sliderInstructions は中立値から動かされたスライダーだけを指示文へ変換します。
func sliderInstructions(req domain.EditRequest) []string {
	var instrs []string

	if req.Lighting != SliderNeutral {
		if req.Lighting > SliderNeutral {
			instrs = append(instrs, fmt.Sprintf(
				"Brighten the overall lighting (intensity %d of 100).", req.Lighting))
		} else {
			instrs = append(instrs, fmt.Sprintf(
				"Darken the overall lighting (intensity %d of 100).", req.Lighting))
		}
	}
	if req.Shadow != SliderNeutral {
		if req.Shadow > SliderNeutral {
			instrs = append(instrs, fmt.Sprintf(
				"Strengthen the shadows (intensity %d of 100).", req.Shadow))
		} else {
			instrs = append(instrs, fmt.Sprintf(
				"Soften the shadows (intensity %d of 100).", req.Shadow))
		}
	}
	if req.Relighting != SliderNeutral {
		instrs = append(instrs, fmt.Sprintf(
			"Relight the scene naturally (amount %d of 100).", req.Relighting))
	}
	return instrs
}
