package health

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AssessmentTestSuite struct {
	suite.Suite
	faker *gofakeit.Faker
}

func (suite *AssessmentTestSuite) SetupSuite() {
	suite.faker = gofakeit.New(20260101)
}

func (suite *AssessmentTestSuite) TestEvaluate() {
	suite.Run("HighBloodSugar_ShouldBeHigh", func() {
		// Act
		a, err := Evaluate(Metrics{"bloodSugar": "160"})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), a.Findings, 1)
		assert.Equal(suite.T(), SectionBloodSugar, a.Findings[0].Section)
		assert.Equal(suite.T(), SeverityHigh, a.Findings[0].Severity)
	})

	suite.Run("BloodSugarBands_ShouldClassify", func() {
		cases := map[string]Severity{
			"99":  SeverityNormal,
			"100": SeverityNormal,
			"101": SeverityBorderline,
			"140": SeverityBorderline,
			"141": SeverityHigh,
		}
		for raw, want := range cases {
			a, err := Evaluate(Metrics{"bloodSugar": raw})
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), want, a.Findings[0].Severity, raw)
		}
	})

	suite.Run("CompositeCholesterol_ShouldFlagEachSubMetric", func() {
		a, err := Evaluate(Metrics{"LDL": "160", "HDL": "35"})

		require.NoError(suite.T(), err)
		f, ok := a.Finding(SectionCholesterol)
		require.True(suite.T(), ok)
		flagged := f.Flagged()
		require.Len(suite.T(), flagged, 2)
		assert.Equal(suite.T(), LDL, flagged[0].Metric)
		assert.Equal(suite.T(), SeverityHigh, flagged[0].Severity)
		assert.Equal(suite.T(), HDL, flagged[1].Metric)
		assert.Equal(suite.T(), SeverityLow, flagged[1].Severity)
	})

	suite.Run("IronGroupWithOneLowValue_ShouldFlagSection", func() {
		a, err := Evaluate(Metrics{"iron": "80", "ferritin": "30"})

		require.NoError(suite.T(), err)
		f, ok := a.Finding(SectionIron)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), SeverityLow, f.Severity)
		require.Len(suite.T(), f.Flagged(), 1)
		assert.Equal(suite.T(), Ferritin, f.Flagged()[0].Metric)
	})

	suite.Run("ZincZero_ShouldBeNormal", func() {
		a, err := Evaluate(Metrics{"zinc": "0"})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), SeverityNormal, a.Findings[0].Severity)
	})

	suite.Run("BlankValues_ShouldBeIgnored", func() {
		a, err := Evaluate(Metrics{"bloodSugar": "  ", "WBC": "5000"})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []Section{SectionImmunity}, a.Sections())
	})

	suite.Run("UnknownKeysOnly_ShouldFail", func() {
		_, err := Evaluate(Metrics{"weight": "70"})

		assert.True(suite.T(), errors.Is(err, ErrNoRecognizedMetrics))
	})
}

func (suite *AssessmentTestSuite) TestValidation() {
	suite.Run("NonNumeric_ShouldReturnValidationError", func() {
		_, err := Evaluate(Metrics{"bloodSugar": "abc"})

		var verr *ValidationError
		require.ErrorAs(suite.T(), err, &verr)
		assert.Equal(suite.T(), BloodSugar, verr.Metric)
		assert.Equal(suite.T(), ReasonNotNumeric, verr.Reason)
		assert.Equal(suite.T(), "血糖値は数値で入力してください", verr.Error())
	})

	suite.Run("OutOfRange_ShouldNameRange", func() {
		_, err := Evaluate(Metrics{"triglyceride": "1200"})

		var verr *ValidationError
		require.ErrorAs(suite.T(), err, &verr)
		assert.Equal(suite.T(), ReasonOutOfRange, verr.Reason)
		assert.Equal(suite.T(), "中性脂肪は0〜1000の範囲で入力してください", verr.Error())
	})

	suite.Run("NaN_ShouldBeRejected", func() {
		_, err := Evaluate(Metrics{"zinc": "NaN"})

		var verr *ValidationError
		require.ErrorAs(suite.T(), err, &verr)
		assert.Equal(suite.T(), ReasonNotNumeric, verr.Reason)
	})

	suite.Run("NonDecimalNotation_ShouldBeRejected", func() {
		for _, raw := range []string{"0x1p7", "1_0", "Inf", "160mg", "1e"} {
			_, err := Evaluate(Metrics{"bloodSugar": raw})

			var verr *ValidationError
			require.ErrorAs(suite.T(), err, &verr, raw)
			assert.Equal(suite.T(), ReasonNotNumeric, verr.Reason, raw)
		}
	})

	suite.Run("DecimalNotation_ShouldBeAccepted", func() {
		for _, raw := range []string{"160", "+95.5", ".5", "1.2e2", " 99 "} {
			_, err := Evaluate(Metrics{"bloodSugar": raw})

			assert.NoError(suite.T(), err, raw)
		}
	})

	suite.Run("FirstInvalidInCanonicalOrder_ShouldWin", func() {
		_, err := Evaluate(Metrics{"zinc": "-1", "LDL": "9999", "bloodSugar": "100"})

		var verr *ValidationError
		require.ErrorAs(suite.T(), err, &verr)
		assert.Equal(suite.T(), LDL, verr.Metric)
	})

	suite.Run("AnyOutOfRangeMetric_ShouldYieldSingleErrorAdvisory", func() {
		for m, r := range Ranges {
			ms := Metrics{
				"bloodSugar": "120",
				"WBC":        "5000",
				string(m):    formatNumber(r.Max + 1),
			}

			advice := Advise(ms)

			assert.Equal(suite.T(), 1, strings.Count(advice, "<p>"), string(m))
			assert.NotContains(suite.T(), advice, "<h4>", string(m))
			assert.Contains(suite.T(), advice, r.DisplayName, string(m))
		}
	})
}

func (suite *AssessmentTestSuite) TestOrdering() {
	suite.Run("ShuffledKeys_ShouldProduceIdenticalAdvisory", func() {
		values := map[string]string{
			"bloodSugar":       "150",
			"triglyceride":     "200",
			"LDL":              "150",
			"HDL":              "30",
			"totalCholesterol": "250",
			"WBC":              "3000",
			"iron":             "40",
			"ferritin":         "20",
			"serumIron":        "50",
			"zinc":             "60",
		}
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}

		var first string
		for i := 0; i < 20; i++ {
			suite.faker.ShuffleAnySlice(keys)
			ms := Metrics{}
			for _, k := range keys {
				ms[k] = values[k]
			}

			a, err := Evaluate(ms)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), []Section{
				SectionBloodSugar,
				SectionTriglyceride,
				SectionCholesterol,
				SectionImmunity,
				SectionIron,
				SectionZinc,
			}, a.Sections())

			advice := Render(a)
			if i == 0 {
				first = advice
				continue
			}
			assert.Equal(suite.T(), first, advice)
		}
	})
}

func TestAssessmentTestSuite(t *testing.T) {
	suite.Run(t, new(AssessmentTestSuite))
}
