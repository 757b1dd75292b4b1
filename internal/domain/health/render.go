package health

import (
	"errors"
	"html"
	"strings"
)

const (
	// FallbackAdvisory replaces the advisory when evaluation cannot run at all.
	FallbackAdvisory = "健康データの分析中にエラーが発生しました。一般的に、バランスの取れた食事と適度な運動が推奨されます。"

	analysisFailure = "健康データの分析中にエラーが発生しました"
)

// Advise evaluates ms and renders the result. Evaluation failures are
// converted into a single-error advisory, so Advise never fails.
func Advise(ms Metrics) string {
	a, err := Evaluate(ms)
	if err != nil {
		return ErrorAdvisory(err)
	}
	return Render(a)
}

// ErrorAdvisory renders err as a one-paragraph advisory.
func ErrorAdvisory(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return paragraph(verr.Error())
	}
	return paragraph(analysisFailure)
}

// Render produces the advisory markup for a, followed by the general advice trailer.
func Render(a Assessment) string {
	var b strings.Builder
	for _, f := range a.Findings {
		renderFinding(&b, f)
	}
	renderTrailer(&b)
	return b.String()
}

func renderFinding(b *strings.Builder, f Finding) {
	switch f.Section {
	case SectionBloodSugar:
		renderBloodSugar(b, f)
	case SectionTriglyceride:
		renderTriglyceride(b, f)
	case SectionCholesterol:
		renderCholesterol(b, f)
	case SectionImmunity:
		renderImmunity(b, f)
	case SectionIron:
		renderIron(b, f)
	case SectionZinc:
		renderZinc(b, f)
	}
}

func renderBloodSugar(b *strings.Builder, f Finding) {
	r, _ := f.Reading(BloodSugar)
	heading(b, "血糖値管理")
	switch r.Severity {
	case SeverityHigh:
		b.WriteString(paragraph("血糖値（" + formatNumber(r.Value) + " mg/dL）が高めです。糖尿病のリスクを示唆しています。以下の対策をお勧めします："))
		list(b,
			"砂糖や精製された炭水化物（白パン、白米、菓子類など）の摂取を減らす",
			"ジュースやソーダなどの糖分の高い飲料を避ける",
			"全粒穀物（玄米、全粒小麦パンなど）を選ぶ",
			"野菜や果物を多く摂る（ただし、果物は糖分が高いものは控えめに）",
		)
	case SeverityBorderline:
		b.WriteString(paragraph("血糖値（" + formatNumber(r.Value) + " mg/dL）が正常範囲の上限付近です。予防的な食事管理をお勧めします："))
		list(b,
			"食事の炭水化物と糖質のバランスに注意する",
			"食物繊維を豊富に含む食品を積極的に摂取する",
			"規則正しい食事時間を心がける",
		)
	default:
		b.WriteString(paragraph("血糖値は正常範囲内です。現在の食生活を維持しましょう。"))
	}
}

func renderTriglyceride(b *strings.Builder, f Finding) {
	r, _ := f.Reading(Triglyceride)
	heading(b, "中性脂肪管理")
	if r.Severity != SeverityHigh {
		b.WriteString(paragraph("中性脂肪の値は正常範囲内です。健康的な脂質バランスを維持しましょう。"))
		return
	}
	b.WriteString(paragraph("中性脂肪（" + formatNumber(r.Value) + " mg/dL）が高めです。心血管疾患のリスクを高める可能性があります。以下の対策をお勧めします："))
	list(b,
		"飽和脂肪酸（赤肉、バター、高脂肪乳製品）の摂取を減らす",
		"糖質の摂取を控える",
		"オメガ3脂肪酸が豊富な食品（サーモン、マグロ、亜麻仁、チアシード）を取り入れる",
		"適度な有酸素運動を定期的に行う",
	)
}

var cholesterolNotes = map[Metric]string{
	LDL:              "LDLコレステロール（悪玉コレステロール）が高めです。",
	HDL:              "HDLコレステロール（善玉コレステロール）が低めです。",
	TotalCholesterol: "総コレステロールが高めです。",
}

func renderCholesterol(b *strings.Builder, f Finding) {
	heading(b, "コレステロール管理")
	var p strings.Builder
	for _, r := range f.Flagged() {
		p.WriteString(cholesterolNotes[r.Metric])
	}
	p.WriteString("コレステロール値を改善するために以下の対策をお勧めします：")
	b.WriteString(paragraph(p.String()))
	list(b,
		"不飽和脂肪酸を多く含む食品（オリーブオイル、アボカド、ナッツ類）を適量取り入れる",
		"食物繊維が豊富な食品（野菜、全粒穀物、豆類）を多く摂る",
		"加工食品や揚げ物を控える",
	)
}

func renderImmunity(b *strings.Builder, f Finding) {
	r, _ := f.Reading(WBC)
	heading(b, "免疫機能")
	switch r.Severity {
	case SeverityHigh:
		b.WriteString(paragraph("白血球数が高めです。免疫反応が活発な状態です。ビタミンCやDを含む食品を摂取しましょう。"))
	case SeverityLow:
		b.WriteString(paragraph("白血球数が低めです。良質なタンパク質や抗酸化物質を含む食品を積極的に摂取しましょう。"))
	default:
		b.WriteString(paragraph("白血球数は正常範囲内です。バランスの良い食事で免疫力を維持しましょう。"))
	}
}

func renderIron(b *strings.Builder, f Finding) {
	heading(b, "鉄分管理")
	flagged := f.Flagged()
	if len(flagged) == 0 {
		b.WriteString(paragraph("鉄分値は正常範囲内です。バランスの良い食事を継続しましょう。"))
		return
	}
	var p strings.Builder
	for _, r := range flagged {
		p.WriteString(Ranges[r.Metric].DisplayName + "（" + formatNumber(r.Value) + "）が低めです。")
	}
	p.WriteString("鉄分が不足している可能性があります。以下の食品を積極的に摂取してください：")
	b.WriteString(paragraph(p.String()))
	list(b,
		"鉄分を含む食品（赤身肉、レバー、ほうれん草、豆類）",
		"ビタミンCを含む食品（柑橘類、キウイ、パプリカ）と一緒に摂ると吸収率が上がります",
	)
}

func renderZinc(b *strings.Builder, f Finding) {
	r, _ := f.Reading(Zinc)
	heading(b, "亜鉛管理")
	if r.Severity != SeverityLow {
		b.WriteString(paragraph("亜鉛値は正常範囲内です。免疫機能の維持に重要なため、引き続き意識してください。"))
		return
	}
	b.WriteString(paragraph("亜鉛が不足している可能性があります。以下の食品を摂取しましょう："))
	list(b,
		"牡蠣、牛肉、豚肉、ナッツ類など亜鉛を豊富に含む食品",
		"亜鉛の吸収を高めるためにビタミンCを含む食品との併用もお勧めします",
	)
}

func renderTrailer(b *strings.Builder) {
	heading(b, "総合的なアドバイス")
	list(b,
		"水分を十分に取る",
		"定期的な運動を心がける",
		"食事はバランスよく、過食を避ける",
	)
	b.WriteString(paragraph("これらの推奨事項を実行することで、全体的な健康状態の向上が期待できます。ただし、これらの変更を行う前に、医師や栄養専門家と相談することをお勧めします。"))
}

func heading(b *strings.Builder, title string) {
	b.WriteString("<h4>" + title + "</h4>")
}

func paragraph(text string) string {
	return "<p>" + html.EscapeString(text) + "</p>"
}

func list(b *strings.Builder, items ...string) {
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>" + item + "</li>")
	}
	b.WriteString("</ul>")
}
