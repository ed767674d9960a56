package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGarmentOrder(t *testing.T) {
	t.Run("設定スロットを含まないこと", func(t *testing.T) {
		for _, cat := range GarmentOrder {
			assert.False(t, cat.IsConfig(), "config slot %s must not appear in GarmentOrder", cat)
		}
	})

	t.Run("衣服カテゴリが重複なく並んでいること", func(t *testing.T) {
		seen := map[Category]bool{}
		for _, cat := range GarmentOrder {
			assert.False(t, seen[cat], "duplicate category %s", cat)
			seen[cat] = true
		}
		assert.Len(t, GarmentOrder, 15)
	})
}

func TestCategoryIsConfig(t *testing.T) {
	assert.True(t, CategoryBackground.IsConfig())
	assert.True(t, CategoryPose.IsConfig())
	assert.True(t, CategoryFit.IsConfig())
	assert.True(t, CategoryGender.IsConfig())
	assert.False(t, CategoryTop.IsConfig())
	assert.False(t, CategoryScarf.IsConfig())
}

func TestCloneItems(t *testing.T) {
	t.Run("コピー後の変更が元へ波及しないこと", func(t *testing.T) {
		vs := ViewState{Items: map[Category]ClothingItem{
			CategoryTop: {ID: "a", Category: CategoryTop},
		}}

		clone := vs.CloneItems()
		clone[CategoryTop] = ClothingItem{ID: "b", Category: CategoryTop}
		clone[CategoryHat] = ClothingItem{ID: "c", Category: CategoryHat}

		assert.Equal(t, "a", vs.Items[CategoryTop].ID)
		assert.Len(t, vs.Items, 1)
	})
}
