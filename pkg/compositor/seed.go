package compositor

import "math/rand/v2"

// RandomSeedSentinel はランダムシードを要求する番兵値です。
const RandomSeedSentinel = -1

// ResolveSeed は指定されたシードをそのまま返します。
// 未指定（nil）または番兵値 −1 の場合は [0, 2³¹−1) の一様乱数を引きます。
// 複数枚生成では i 枚目がベースシード + i を使うため、論理リクエスト全体が
// 再現可能でありつつ各画像は異なる結果になります。
func ResolveSeed(seed *int64) int64 {
	if seed != nil && *seed != RandomSeedSentinel {
		return *seed
	}
	return rand.Int64N(1 << 31)
}
