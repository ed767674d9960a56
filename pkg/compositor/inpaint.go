package compositor

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// BuildInpaintParts はインペイント要求を「切り出し画像 + 全体のコンテキスト
// 画像 + 指示ブロック」へ組み立てます（crop-with-context 方式）。
//
// 切り出しによってリモートモデルの注意を編集対象へ絞りつつ、コンテキスト
// 画像で周囲との整合を取らせます。指定領域以外を変更しないよう明示しますが、
// モデルの遵守はあくまで助言的なもので、実際の保証はクライアント側の
// CompositeByMask が行います。
func BuildInpaintParts(crop, contextImage []byte, prompt string) ([]*genai.Part, error) {
	cropPart := imagePart(crop)
	if cropPart == nil {
		return nil, fmt.Errorf("切り出し領域が有効な画像ではありません")
	}
	ctxPart := imagePart(contextImage)
	if ctxPart == nil {
		return nil, fmt.Errorf("コンテキスト画像が有効な画像ではありません")
	}

	var sb strings.Builder
	sb.WriteString("Image 1: the region of a photo to regenerate.\n")
	sb.WriteString("Image 2: the full photo, provided only as context for lighting, color and perspective.\n")
	sb.WriteString("Redraw image 1 according to the following instruction, blending seamlessly with the surroundings shown in image 2.\n")
	if prompt != "" {
		sb.WriteString("Instruction: " + prompt + "\n")
	}
	sb.WriteString("Modify only the designated region. Preserve everything else exactly as it is. ")
	sb.WriteString("Return the redrawn region at the same framing as image 1.")

	return []*genai.Part{
		cropPart,
		ctxPart,
		{Text: sb.String()},
	}, nil
}
