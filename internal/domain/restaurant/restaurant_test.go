package restaurant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rs []Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestInferCategories(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Category
	}{
		{"none", "総合的なアドバイス", nil},
		{"blood sugar", "<h4>血糖値管理</h4>", []Category{CategoryLowSugar}},
		{"case insensitive", "epaとdhaを含む魚", []Category{CategoryOmega3}},
		{"canonical order", "プロテイン 鉄分 糖尿", []Category{CategoryLowSugar, CategoryIronDeficiency, CategoryHighProtein}},
		{"all", "血糖 塩分 貧血 オメガ3 食物繊維 たんぱく質", []Category{
			CategoryLowSugar, CategoryLowSalt, CategoryIronDeficiency,
			CategoryOmega3, CategoryHighFiber, CategoryHighProtein,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategories(tt.text))
		})
	}
}

func TestCatalog_NoCategoriesUsesGeneralEntries(t *testing.T) {
	got := Catalog(InferCategories("特記事項なし"), DefaultLimit)

	assert.GreaterOrEqual(t, len(got), 3)
	assert.LessOrEqual(t, len(got), 5)
	assert.Equal(t, []string{"オーガニックテーブル 丸の内", "タニタ食堂 秋葉原店", "GREEN BROTHER 表参道"}, names(got))
}

func TestCatalog_LowSugarAndIron(t *testing.T) {
	got := Catalog(InferCategories("血糖値が高めです。鉄分が不足しています。"), DefaultLimit)

	require.GreaterOrEqual(t, len(got), 2)
	assert.LessOrEqual(t, len(got), 5)
	assert.Equal(t, "低糖質キッチン 銀座店", got[0].Name)
	assert.Equal(t, "鉄人厨房", got[1].Name)
	assert.Equal(t, []string{"オーガニックテーブル 丸の内", "タニタ食堂 秋葉原店", "GREEN BROTHER 表参道"}, names(got[2:]))
}

func TestCatalog_ThreeOrMoreCategoriesSkipsFiller(t *testing.T) {
	got := Catalog([]Category{CategoryLowSugar, CategoryLowSalt, CategoryIronDeficiency}, DefaultLimit)

	assert.Equal(t, []string{"低糖質キッチン 銀座店", "健康食堂 減塩亭", "鉄人厨房"}, names(got))
}

func TestCatalog_TruncatesToLimit(t *testing.T) {
	all := InferCategories("血糖 塩分 貧血 オメガ3 食物繊維 たんぱく質")

	assert.Len(t, Catalog(all, DefaultLimit), 5)
	assert.Len(t, Catalog(all, 2), 2)
	assert.Len(t, Catalog(all, 0), DefaultLimit)
}

func TestCatalog_EntriesAreIndependentCopies(t *testing.T) {
	first := Catalog([]Category{CategoryLowSugar}, DefaultLimit)
	*first[0].Rating = 0

	second := Catalog([]Category{CategoryLowSugar}, DefaultLimit)
	require.NotNil(t, second[0].Rating)
	assert.Equal(t, 4.6, *second[0].Rating)
}

func TestSearchKeywords(t *testing.T) {
	got := SearchKeywords("血糖値が高く、LDLコレステロールが高めです。")

	assert.Equal(t, []string{"低糖質", "ロカボ", "ダイエット", "ヘルシー", "オーガニック", "健康", "ベジタリアン"}, got)
}

func TestSearchKeywords_BaseOnly(t *testing.T) {
	assert.Equal(t, []string{"オーガニック", "健康", "ベジタリアン"}, SearchKeywords(""))
}

func TestSuggestHealthOptions(t *testing.T) {
	tests := []struct {
		name       string
		place      string
		types      []string
		categories []Category
		want       string
	}{
		{"default", "定食屋 さくら", []string{"restaurant"}, nil, DefaultHealthOption},
		{"name", "Organic Veggie Cafe", nil, nil, "オーガニック食材使用、ベジタリアンメニューあり"},
		{"types", "さくら", []string{"restaurant", "vegetarian_restaurant"}, nil, "ベジタリアン専門"},
		{"categories", "さくら", nil, []Category{CategoryLowSugar, CategoryLowSalt}, "低糖質メニューあり、減塩メニューあり"},
		{"name matches category vocabulary", "減塩食堂", nil, nil, "減塩メニューあり"},
		{"deduplicated", "ヘルシー減塩キッチン", nil, []Category{CategoryLowSalt}, "健康志向メニュー、減塩メニューあり"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestHealthOptions(tt.place, tt.types, tt.categories))
		})
	}
}
