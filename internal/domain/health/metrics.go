// Package health evaluates submitted health metrics into an ordered
// assessment and renders it as advisory text.
package health

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimal limits values to plain decimal notation. strconv alone would also
// take hex floats and Inf.
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Metric is the wire name of a single health measurement.
type Metric string

const (
	BloodSugar       Metric = "bloodSugar"
	Triglyceride     Metric = "triglyceride"
	LDL              Metric = "LDL"
	HDL              Metric = "HDL"
	TotalCholesterol Metric = "totalCholesterol"
	WBC              Metric = "WBC"
	Iron             Metric = "iron"
	Ferritin         Metric = "ferritin"
	SerumIron        Metric = "serumIron"
	Zinc             Metric = "zinc"
)

// Range holds the accepted bounds for a metric, inclusive at both ends.
type Range struct {
	Min         float64
	Max         float64
	DisplayName string
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Ranges lists every recognized metric.
var Ranges = map[Metric]Range{
	BloodSugar:       {Min: 0, Max: 500, DisplayName: "血糖値"},
	Triglyceride:     {Min: 0, Max: 1000, DisplayName: "中性脂肪"},
	LDL:              {Min: 0, Max: 500, DisplayName: "LDLコレステロール"},
	HDL:              {Min: 0, Max: 200, DisplayName: "HDLコレステロール"},
	TotalCholesterol: {Min: 0, Max: 1000, DisplayName: "総コレステロール"},
	WBC:              {Min: 0, Max: 20000, DisplayName: "白血球数"},
	Iron:             {Min: 0, Max: 200, DisplayName: "鉄分"},
	Ferritin:         {Min: 0, Max: 500, DisplayName: "フェリチン"},
	SerumIron:        {Min: 0, Max: 200, DisplayName: "血清鉄"},
	Zinc:             {Min: 0, Max: 200, DisplayName: "亜鉛"},
}

// canonicalOrder fixes both validation order and the order findings appear in.
var canonicalOrder = []Metric{
	BloodSugar,
	Triglyceride,
	LDL, HDL, TotalCholesterol,
	WBC,
	Iron, Ferritin, SerumIron,
	Zinc,
}

// Metrics maps a metric name to the raw value supplied by the caller.
// Unknown keys are ignored and blank values count as absent.
type Metrics map[string]string

// Has reports whether a non-blank value was supplied for m.
func (ms Metrics) Has(m Metric) bool {
	return strings.TrimSpace(ms[string(m)]) != ""
}

// Recognized reports whether at least one known metric carries a value.
func (ms Metrics) Recognized() bool {
	for _, m := range canonicalOrder {
		if ms.Has(m) {
			return true
		}
	}
	return false
}

// parse converts the raw value for m, enforcing its range.
func (ms Metrics) parse(m Metric) (float64, error) {
	r := Ranges[m]
	raw := strings.TrimSpace(ms[string(m)])

	if !decimal.MatchString(raw) {
		return 0, &ValidationError{Metric: m, DisplayName: r.DisplayName, Value: raw, Min: r.Min, Max: r.Max, Reason: ReasonNotNumeric}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, &ValidationError{Metric: m, DisplayName: r.DisplayName, Value: raw, Min: r.Min, Max: r.Max, Reason: ReasonNotNumeric}
	}
	if !r.Contains(v) {
		return 0, &ValidationError{Metric: m, DisplayName: r.DisplayName, Value: raw, Min: r.Min, Max: r.Max, Reason: ReasonOutOfRange}
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
