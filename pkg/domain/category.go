package domain

// Category は 1 つのビューに装着できる衣服・小物・設定スロットの種別です。
// 同一ビュー内では 1 カテゴリにつき 1 アイテムのみ保持できます。
type Category string

const (
	CategoryTop       Category = "top"
	CategoryPants     Category = "pants"
	CategorySkirt     Category = "skirt"
	CategoryDress     Category = "dress"
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategorySocks     Category = "socks"
	CategoryHat       Category = "hat"
	CategoryBag       Category = "bag"
	CategoryGlasses   Category = "glasses"
	CategoryNecklace  Category = "necklace"
	CategoryEarrings  Category = "earrings"
	CategoryWatch     Category = "watch"
	CategoryBelt      Category = "belt"
	CategoryScarf     Category = "scarf"

	// 以下は衣服ではなく、生成条件を保持するための設定専用スロットです。
	CategoryBackground Category = "background"
	CategoryPose       Category = "pose"
	CategoryFit        Category = "fit"
	CategoryGender     Category = "gender"
)

// GarmentOrder は生成リクエストに画像を並べる際の固定順序です。
// リクエスト内の位置がロール記述と対応するため、順序は安定である必要があります。
var GarmentOrder = []Category{
	CategoryTop,
	CategoryPants,
	CategorySkirt,
	CategoryDress,
	CategoryOuterwear,
	CategoryShoes,
	CategorySocks,
	CategoryHat,
	CategoryBag,
	CategoryGlasses,
	CategoryNecklace,
	CategoryEarrings,
	CategoryWatch,
	CategoryBelt,
	CategoryScarf,
}

// IsConfig は設定専用スロット（画像を持たないカテゴリ）かどうかを返します。
func (c Category) IsConfig() bool {
	switch c {
	case CategoryBackground, CategoryPose, CategoryFit, CategoryGender:
		return true
	}
	return false
}
