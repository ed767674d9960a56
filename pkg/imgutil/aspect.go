package imgutil

import "math"

// aspectTable は対応するアスペクト比の固定順序テーブルです。
// 同率の場合は先頭に近いものが勝つため、順序に意味があります。
var aspectTable = []struct {
	name  string
	value float64
}{
	{"1:1", 1.0},
	{"4:3", 4.0 / 3.0},
	{"16:9", 16.0 / 9.0},
	{"21:9", 21.0 / 9.0},
	{"5:4", 5.0 / 4.0},
	{"3:2", 3.0 / 2.0},
	{"2:3", 2.0 / 3.0},
	{"9:16", 9.0 / 16.0},
	{"3:4", 3.0 / 4.0},
	{"4:5", 4.0 / 5.0},
}

// DetectAspectRatio は幅/高さに最も近い対応アスペクト比を返します。
// 編集・インペイント要求が呼び出し元の構図を引き継ぐために使います。
// デコードできない場合は "1:1" に倒します。
func DetectAspectRatio(data []byte) string {
	w, h, err := Dimensions(data)
	if err != nil || w <= 0 || h <= 0 {
		return "1:1"
	}

	ratio := float64(w) / float64(h)
	best := aspectTable[0].name
	bestDiff := math.Abs(ratio - aspectTable[0].value)
	for _, entry := range aspectTable[1:] {
		diff := math.Abs(ratio - entry.value)
		if diff < bestDiff {
			best = entry.name
			bestDiff = diff
		}
	}
	return best
}
