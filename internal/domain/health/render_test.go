package health

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trailerHeading = "<h4>総合的なアドバイス</h4>"

func TestAdvise_HighBloodSugar(t *testing.T) {
	advice := Advise(Metrics{"bloodSugar": "160"})

	assert.True(t, strings.HasPrefix(advice, "<h4>血糖値管理</h4>"))
	assert.Contains(t, advice, "血糖値（160 mg/dL）が高めです。")
	assert.Contains(t, advice, trailerHeading)
	assert.Contains(t, advice, "医師や栄養専門家と相談することをお勧めします。")
}

func TestAdvise_ValidationErrorIsSingleParagraph(t *testing.T) {
	advice := Advise(Metrics{"bloodSugar": "abc"})

	assert.Equal(t, "<p>血糖値は数値で入力してください</p>", advice)
}

func TestAdvise_NoRecognizedMetric(t *testing.T) {
	advice := Advise(Metrics{"height": "170"})

	assert.Equal(t, "<p>健康データの分析中にエラーが発生しました</p>", advice)
}

func TestRender_CholesterolBlendsFlags(t *testing.T) {
	a, err := Evaluate(Metrics{"LDL": "160", "HDL": "35"})
	require.NoError(t, err)

	advice := Render(a)

	assert.Contains(t, advice, "<h4>コレステロール管理</h4><p>LDLコレステロール（悪玉コレステロール）が高めです。HDLコレステロール（善玉コレステロール）が低めです。コレステロール値を改善するために")
}

func TestRender_IronListsEachLowSubMetric(t *testing.T) {
	a, err := Evaluate(Metrics{"iron": "40", "serumIron": "45", "ferritin": "120"})
	require.NoError(t, err)

	advice := Render(a)

	assert.Contains(t, advice, "鉄分（40）が低めです。血清鉄（45）が低めです。鉄分が不足している可能性があります。")
	assert.NotContains(t, advice, "フェリチン（")
}

func TestRender_NormalValues(t *testing.T) {
	a, err := Evaluate(Metrics{"triglyceride": "90", "WBC": "6000", "zinc": "100", "iron": "90"})
	require.NoError(t, err)

	advice := Render(a)

	assert.Contains(t, advice, "中性脂肪の値は正常範囲内です。")
	assert.Contains(t, advice, "白血球数は正常範囲内です。")
	assert.Contains(t, advice, "亜鉛値は正常範囲内です。")
	assert.Contains(t, advice, "鉄分値は正常範囲内です。")
	assert.Less(t, strings.Index(advice, "中性脂肪管理"), strings.Index(advice, "免疫機能"))
	assert.Less(t, strings.Index(advice, "鉄分管理"), strings.Index(advice, "亜鉛管理"))
	assert.True(t, strings.HasSuffix(advice, "</p>"))
}

func TestRender_Idempotent(t *testing.T) {
	ms := Metrics{"bloodSugar": "120.5", "zinc": "50"}

	assert.Equal(t, Advise(ms), Advise(ms))
	assert.Contains(t, Advise(ms), "血糖値（120.5 mg/dL）が正常範囲の上限付近です。")
}
