package health

// Section identifies one advisory block.
type Section string

const (
	SectionBloodSugar   Section = "blood_sugar"
	SectionTriglyceride Section = "triglyceride"
	SectionCholesterol  Section = "cholesterol"
	SectionImmunity     Section = "immunity"
	SectionIron         Section = "iron"
	SectionZinc         Section = "zinc"
)

// Severity is the band a reading falls into.
type Severity string

const (
	SeverityNormal     Severity = "normal"
	SeverityBorderline Severity = "borderline"
	SeverityHigh       Severity = "high"
	SeverityLow        Severity = "low"
)

// Reading is one parsed metric and its band.
type Reading struct {
	Metric   Metric
	Value    float64
	Severity Severity
}

// Flagged reports whether the reading is outside the normal band.
func (r Reading) Flagged() bool {
	return r.Severity != SeverityNormal
}

// Finding is the evaluation of one section. Composite sections carry a
// reading per supplied sub-metric.
type Finding struct {
	Section  Section
	Severity Severity
	Readings []Reading
}

// Flagged returns the readings outside the normal band, in canonical order.
func (f Finding) Flagged() []Reading {
	var out []Reading
	for _, r := range f.Readings {
		if r.Flagged() {
			out = append(out, r)
		}
	}
	return out
}

// Reading returns the reading for m, if the finding has one.
func (f Finding) Reading(m Metric) (Reading, bool) {
	for _, r := range f.Readings {
		if r.Metric == m {
			return r, true
		}
	}
	return Reading{}, false
}

// Assessment is the ordered set of findings for one submission.
type Assessment struct {
	Findings []Finding
}

// Finding returns the finding for s, if present.
func (a Assessment) Finding(s Section) (Finding, bool) {
	for _, f := range a.Findings {
		if f.Section == s {
			return f, true
		}
	}
	return Finding{}, false
}

// Sections returns the sections in the order they were produced.
func (a Assessment) Sections() []Section {
	out := make([]Section, 0, len(a.Findings))
	for _, f := range a.Findings {
		out = append(out, f.Section)
	}
	return out
}

type band struct {
	severity Severity
	matches  func(float64) bool
}

type sectionRule struct {
	section Section
	metrics []Metric
}

var sectionRules = []sectionRule{
	{SectionBloodSugar, []Metric{BloodSugar}},
	{SectionTriglyceride, []Metric{Triglyceride}},
	{SectionCholesterol, []Metric{LDL, HDL, TotalCholesterol}},
	{SectionImmunity, []Metric{WBC}},
	{SectionIron, []Metric{Iron, Ferritin, SerumIron}},
	{SectionZinc, []Metric{Zinc}},
}

// bands are checked in order; a value matching none is normal.
var bands = map[Metric][]band{
	BloodSugar: {
		{SeverityHigh, func(v float64) bool { return v > 140 }},
		{SeverityBorderline, func(v float64) bool { return v > 100 }},
	},
	Triglyceride: {
		{SeverityHigh, func(v float64) bool { return v > 150 }},
	},
	LDL: {
		{SeverityHigh, func(v float64) bool { return v > 140 }},
	},
	HDL: {
		{SeverityLow, func(v float64) bool { return v < 40 }},
	},
	TotalCholesterol: {
		{SeverityHigh, func(v float64) bool { return v > 240 }},
	},
	WBC: {
		{SeverityHigh, func(v float64) bool { return v > 10000 }},
		{SeverityLow, func(v float64) bool { return v < 4000 }},
	},
	Iron: {
		{SeverityLow, func(v float64) bool { return v < 60 }},
	},
	Ferritin: {
		{SeverityLow, func(v float64) bool { return v < 50 }},
	},
	SerumIron: {
		{SeverityLow, func(v float64) bool { return v < 60 }},
	},
	Zinc: {
		// zero is treated as not measured
		{SeverityLow, func(v float64) bool { return v > 0 && v < 80 }},
	},
}

func classify(m Metric, v float64) Severity {
	for _, b := range bands[m] {
		if b.matches(v) {
			return b.severity
		}
	}
	return SeverityNormal
}

// Evaluate validates every supplied metric and classifies it. Validation
// is all-or-nothing: the first invalid metric in canonical order aborts
// the pass with a *ValidationError.
func Evaluate(ms Metrics) (Assessment, error) {
	if !ms.Recognized() {
		return Assessment{}, ErrNoRecognizedMetrics
	}

	values := make(map[Metric]float64, len(canonicalOrder))
	for _, m := range canonicalOrder {
		if !ms.Has(m) {
			continue
		}
		v, err := ms.parse(m)
		if err != nil {
			return Assessment{}, err
		}
		values[m] = v
	}

	var a Assessment
	for _, rule := range sectionRules {
		f := Finding{Section: rule.section, Severity: SeverityNormal}
		for _, m := range rule.metrics {
			v, ok := values[m]
			if !ok {
				continue
			}
			r := Reading{Metric: m, Value: v, Severity: classify(m, v)}
			if r.Flagged() && f.Severity == SeverityNormal {
				f.Severity = r.Severity
			}
			f.Readings = append(f.Readings, r)
		}
		if len(f.Readings) > 0 {
			a.Findings = append(a.Findings, f)
		}
	}
	return a, nil
}
