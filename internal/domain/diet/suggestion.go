// Package diet holds diet suggestions, the completion prompt that asks for
// them, and the normalizer for the shapes a model may answer with.
package diet

// Suggestion is one proposed dish.
type Suggestion struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	NutritionSummary string `json:"nutrition"`
}

// Fallback is returned when no completion service is configured or the call fails.
func Fallback() []Suggestion {
	return []Suggestion{
		{
			Name:             "地中海風サラダボウル",
			Description:      "オリーブオイルでドレッシングした新鮮な野菜とレンズ豆のサラダ。低糖質で塩分控えめ。",
			NutritionSummary: "カロリー: 350kcal, 炭水化物: 30g, タンパク質: 15g, 脂質: 20g, 食塩相当量: 1.5g",
		},
		{
			Name:             "蒸し鶏と季節野菜のプレート",
			Description:      "香草で香り付けした蒸し鶏と、軽く蒸した季節の野菜。シンプルな味付けで塩分を抑えています。",
			NutritionSummary: "カロリー: 420kcal, 炭水化物: 25g, タンパク質: 40g, 脂質: 18g, 食塩相当量: 1.2g",
		},
		{
			Name:             "玄米と焼き魚の和風セット",
			Description:      "玄米ご飯と、塩分控えめの焼き魚、小鉢3種。低GIで血糖値の上昇を緩やかにします。",
			NutritionSummary: "カロリー: 480kcal, 炭水化物: 60g, タンパク質: 30g, 脂質: 12g, 食塩相当量: 1.8g",
		},
	}
}

// ModelFallback is returned when the model answered with valid JSON of no recognizable shape.
func ModelFallback() []Suggestion {
	return []Suggestion{{
		Name:             "健康的な地中海風サラダ",
		Description:      "あなたの健康状態に基づいて推奨される、新鮮な野菜とオリーブオイルを使用した地中海風サラダです。",
		NutritionSummary: "ビタミン、ミネラル、健康的な脂肪酸を豊富に含みます。",
	}}
}

// StageFallback replaces the whole acquisition stage if it aborts unexpectedly.
func StageFallback() []Suggestion {
	return []Suggestion{{
		Name:             "バランスの良い日本食",
		Description:      "玄米、焼き魚、季節の野菜の煮物を中心とした低塩分・低脂質の食事",
		NutritionSummary: "カロリー: 450kcal, 炭水化物: 60g, タンパク質: 25g, 脂質: 10g",
	}}
}

// ErrorFallback accompanies an internal-error response.
func ErrorFallback() []Suggestion {
	return []Suggestion{{
		Name:             "エラー時のデフォルト推薦",
		Description:      "バランスの取れた食事を心がけてください。野菜、タンパク質、穀物をバランスよく摂取しましょう。",
		NutritionSummary: "栄養バランスを考慮した食事",
	}}
}
