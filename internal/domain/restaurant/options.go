package restaurant

import (
	"regexp"
	"strings"
)

// DefaultHealthOption is used when nothing more specific applies.
const DefaultHealthOption = "健康的なメニューあり"

var nameOptions = []struct {
	pattern *regexp.Regexp
	option  string
}{
	{regexp.MustCompile(`organ|オーガニック`), "オーガニック食材使用"},
	{regexp.MustCompile(`veg|ベジ|ヴェジ`), "ベジタリアンメニューあり"},
	{regexp.MustCompile(`health|ヘルシー|健康`), "健康志向メニュー"},
	{regexp.MustCompile(`diet|ダイエット`), "ダイエット向けメニュー"},
}

var typeOptions = []struct {
	placeType string
	option    string
}{
	{"vegetarian_restaurant", "ベジタリアン専門"},
	{"health", "健康食専門"},
}

// SuggestHealthOptions derives a health-option label for a live search
// result from its name, its place types and the categories inferred for
// the request.
func SuggestHealthOptions(name string, types []string, categories []Category) string {
	var options []string
	seen := make(map[string]struct{})
	add := func(o string) {
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		options = append(options, o)
	}

	lower := strings.ToLower(name)
	for _, n := range nameOptions {
		if n.pattern.MatchString(lower) {
			add(n.option)
		}
	}
	for _, t := range typeOptions {
		for _, pt := range types {
			if pt == t.placeType {
				add(t.option)
				break
			}
		}
	}

	requested := make(map[Category]bool, len(categories))
	for _, c := range categories {
		requested[c] = true
	}
	tags := lower + " " + strings.Join(types, " ")
	for _, r := range categoryRules {
		if requested[r.category] || r.pattern.MatchString(tags) {
			add(r.option)
		}
	}

	if len(options) == 0 {
		return DefaultHealthOption
	}
	return strings.Join(options, "、")
}
