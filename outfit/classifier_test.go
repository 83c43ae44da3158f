package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"outfit-studio/models"
)

func TestClassifyRegions(t *testing.T) {
	tests := []struct {
		title string
		want  models.BodyRegion
	}{
		{"Women's Denim Jacket", models.RegionOuterwear},
		{"Running Shoes", models.RegionShoes},
		{"Blue Evening Dress", models.RegionDress},
		{"Leather Handbag", models.RegionAccessory},
		{"Plain Crewneck", models.RegionTop},
		{"Slim Fit JEANS", models.RegionBottom},
		{"Wool Coat", models.RegionOuterwear},
		{"Ankle Boot", models.RegionShoes},
		{"Smart Watch Band", models.RegionAccessory},
		{"", models.RegionTop},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title).Region)
		})
	}
}

func TestClassifyPrecedenceIgnoresPositionAndCount(t *testing.T) {
	// skirt appears first and twice, but the outerwear group is evaluated first
	assert.Equal(t, models.RegionOuterwear, Classify("Skirt and skirt set with Jacket").Region)
	// bottom keywords outrank dress
	assert.Equal(t, models.RegionBottom, Classify("Dress Pants").Region)
	// dress outranks shoes
	assert.Equal(t, models.RegionDress, Classify("Dress Shoes").Region)
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := ClassifyWithGender("Floral Summer Dress", "women")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyWithGender("Floral Summer Dress", "women"))
	}
}

func TestClassifyGlyphs(t *testing.T) {
	assert.Equal(t, "👗", Classify("Red Dress").Glyph)
	assert.Equal(t, "👟", Classify("Running Shoes").Glyph)
	assert.Equal(t, "👜", Classify("Leather Handbag").Glyph)
	assert.Equal(t, "👕", Classify("Plain Crewneck").Glyph)
	assert.Equal(t, "👚", ClassifyWithGender("Plain Crewneck", "Women's").Glyph)
	assert.Equal(t, "💍", Classify("Statement Accessory").Glyph)
}

func TestGenderTagNeverChangesRegion(t *testing.T) {
	for _, tag := range []string{"", "men", "women", "unisex", "???"} {
		assert.Equal(t, models.RegionOuterwear, ClassifyWithGender("Puffer Jacket", tag).Region)
	}
}

func TestRegionRulesOrder(t *testing.T) {
	rules := RegionRules()
	want := []models.BodyRegion{
		models.RegionOuterwear,
		models.RegionBottom,
		models.RegionDress,
		models.RegionShoes,
		models.RegionAccessory,
	}
	if assert.Len(t, rules, len(want)) {
		for i, rule := range rules {
			assert.Equal(t, want[i], rule.Region)
		}
	}

	// callers get a copy
	rules[0].Keywords[0] = "mutated"
	assert.Equal(t, "jacket", RegionRules()[0].Keywords[0])
}
