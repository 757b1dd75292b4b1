// Package restaurant infers dietary-need categories from advisory text and
// builds restaurant lists from them, either from a fixed catalog or from
// live place-search results.
package restaurant

// Restaurant is a single recommendation. Optional fields are omitted when unknown.
type Restaurant struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Cuisine       string   `json:"cuisine,omitempty"`
	HealthOptions string   `json:"healthOptions,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	PhotoURL      string   `json:"photoUrl,omitempty"`
	PriceLevel    *int     `json:"priceLevel,omitempty"`
	URL           string   `json:"url,omitempty"`
}

// DefaultLimit caps result lists when no limit is configured.
const DefaultLimit = 5

func rating(v float64) *float64 { return &v }

func (r Restaurant) clone() Restaurant {
	if r.Rating != nil {
		r.Rating = rating(*r.Rating)
	}
	if r.PriceLevel != nil {
		p := *r.PriceLevel
		r.PriceLevel = &p
	}
	return r
}

// Truncate caps rs at limit; a non-positive limit means DefaultLimit.
func Truncate(rs []Restaurant, limit int) []Restaurant {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(rs) > limit {
		return rs[:limit]
	}
	return rs
}
