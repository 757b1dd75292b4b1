package restaurant

// MinCatalogResults is the count below which general entries are appended.
const MinCatalogResults = 3

var catalog = map[Category]Restaurant{
	CategoryLowSugar: {
		Name:          "低糖質キッチン 銀座店",
		Address:       "東京都中央区銀座4-6-1",
		Cuisine:       "低糖質、ケトジェニック",
		HealthOptions: "糖質制限メニュー、GI値表示、完全無添加",
		Rating:        rating(4.6),
	},
	CategoryLowSalt: {
		Name:          "健康食堂 減塩亭",
		Address:       "東京都新宿区西新宿1-1-3",
		Cuisine:       "和食、洋食",
		HealthOptions: "減塩調理、ナトリウム表示、医師監修メニュー",
		Rating:        rating(4.3),
	},
	CategoryIronDeficiency: {
		Name:          "鉄人厨房",
		Address:       "東京都渋谷区神宮前5-2-1",
		Cuisine:       "鉄板焼き、オーガニック",
		HealthOptions: "鉄分強化メニュー、貧血対策食、有機食材使用",
		Rating:        rating(4.5),
	},
	CategoryOmega3: {
		Name:          "海の幸レストラン 青い魚",
		Address:       "東京都港区六本木3-1-1",
		Cuisine:       "魚料理、地中海料理",
		HealthOptions: "EPA/DHA豊富な魚料理、オメガ3オイル使用",
		Rating:        rating(4.7),
	},
	CategoryHighFiber: {
		Name:          "ベジタブルガーデン",
		Address:       "東京都目黒区自由が丘1-2-3",
		Cuisine:       "ベジタリアン、マクロビオティック",
		HealthOptions: "食物繊維豊富なメニュー、腸活サポート食",
		Rating:        rating(4.4),
	},
	CategoryHighProtein: {
		Name:          "プロテインパレス",
		Address:       "東京都豊島区池袋2-1-1",
		Cuisine:       "高タンパク料理、フィットネスフード",
		HealthOptions: "タンパク質計算済みメニュー、アスリート向け食事",
		Rating:        rating(4.2),
	},
}

func generalEntries() []Restaurant {
	return []Restaurant{
		{
			Name:          "オーガニックテーブル 丸の内",
			Address:       "東京都千代田区丸の内1-1-1",
			Cuisine:       "オーガニック、ベジタリアン",
			HealthOptions: "完全有機食材、アレルギー対応、栄養士監修",
			Rating:        rating(4.8),
		},
		{
			Name:          "タニタ食堂 秋葉原店",
			Address:       "東京都千代田区外神田6-14-1",
			Cuisine:       "定食、ヘルシー日本食",
			HealthOptions: "カロリー計算済み、栄養バランス重視",
			Rating:        rating(4.1),
		},
		{
			Name:          "GREEN BROTHER 表参道",
			Address:       "東京都渋谷区神宮前5-5-5",
			Cuisine:       "サラダ、スムージー",
			HealthOptions: "ローカロリー、スーパーフード使用",
			Rating:        rating(4.3),
		},
	}
}

// Catalog returns one curated entry per category in the given order. When
// fewer than MinCatalogResults entries result, the general entries are
// appended as a block. The list is capped at limit.
func Catalog(categories []Category, limit int) []Restaurant {
	out := make([]Restaurant, 0, len(categories)+MinCatalogResults)
	for _, c := range categories {
		if r, ok := catalog[c]; ok {
			out = append(out, r.clone())
		}
	}
	if len(out) < MinCatalogResults {
		out = append(out, generalEntries()...)
	}
	return Truncate(out, limit)
}
