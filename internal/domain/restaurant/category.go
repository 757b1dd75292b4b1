package restaurant

import "regexp"

// Category is a dietary need inferred from advisory text.
type Category string

const (
	CategoryLowSugar       Category = "low-sugar"
	CategoryLowSalt        Category = "low-salt"
	CategoryIronDeficiency Category = "iron-deficiency"
	CategoryOmega3         Category = "omega-3"
	CategoryHighFiber      Category = "high-fiber"
	CategoryHighProtein    Category = "high-protein"
)

type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
	// keywords are appended to live search queries
	keywords []string
	// option is the health-option label for live results
	option string
}

// categoryRules is the canonical category order.
var categoryRules = []categoryRule{
	{
		category: CategoryLowSugar,
		pattern:  regexp.MustCompile(`(?i)血糖|糖尿|低糖質|糖質制限`),
		keywords: []string{"低糖質", "ロカボ", "ダイエット"},
		option:   "低糖質メニューあり",
	},
	{
		category: CategoryLowSalt,
		pattern:  regexp.MustCompile(`(?i)塩分|高血圧|ナトリウム|減塩`),
		keywords: []string{"減塩", "ヘルシー"},
		option:   "減塩メニューあり",
	},
	{
		category: CategoryIronDeficiency,
		pattern:  regexp.MustCompile(`(?i)鉄分|貧血|鉄`),
		keywords: []string{"鉄分"},
		option:   "鉄分補給メニューあり",
	},
	{
		category: CategoryOmega3,
		pattern:  regexp.MustCompile(`(?i)オメガ3|EPA|DHA|魚油|不飽和脂肪酸`),
		keywords: []string{"魚料理"},
		option:   "魚料理メニューあり",
	},
	{
		category: CategoryHighFiber,
		pattern:  regexp.MustCompile(`(?i)食物繊維|便秘|腸内環境`),
		keywords: []string{"野菜"},
		option:   "野菜たっぷりメニューあり",
	},
	{
		category: CategoryHighProtein,
		pattern:  regexp.MustCompile(`(?i)タンパク質|たんぱく質|プロテイン`),
		keywords: []string{"高タンパク"},
		option:   "高タンパクメニューあり",
	},
}

// keywordRule adds search keywords for advisory themes that are not categories.
type keywordRule struct {
	pattern  *regexp.Regexp
	keywords []string
}

var extraKeywordRules = []keywordRule{
	{regexp.MustCompile(`(?i)カロリー|体重|ダイエット|肥満`), []string{"ダイエット", "ヘルシー", "カロリー控えめ"}},
	{regexp.MustCompile(`(?i)コレステロール|LDL|HDL`), []string{"ヘルシー", "オーガニック"}},
}

var baseKeywords = []string{"オーガニック", "健康", "ベジタリアン"}

// InferCategories returns the categories whose vocabulary appears in text,
// in canonical order.
func InferCategories(text string) []Category {
	var out []Category
	for _, r := range categoryRules {
		if r.pattern.MatchString(text) {
			out = append(out, r.category)
		}
	}
	return out
}

// SearchKeywords builds the deduplicated live-search keyword list for text.
func SearchKeywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(words []string) {
		for _, w := range words {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}

	for _, c := range InferCategories(text) {
		add(ruleFor(c).keywords)
	}
	for _, r := range extraKeywordRules {
		if r.pattern.MatchString(text) {
			add(r.keywords)
		}
	}
	add(baseKeywords)
	return out
}

func ruleFor(c Category) categoryRule {
	for _, r := range categoryRules {
		if r.category == c {
			return r
		}
	}
	return categoryRule{}
}
