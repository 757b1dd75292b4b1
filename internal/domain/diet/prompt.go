package diet

import "fmt"

// SystemPrompt constrains the model to answer in JSON.
const SystemPrompt = "あなたは健康的な食事を提案する栄養士です。JSON形式で回答してください。"

const userPromptTemplate = `以下の健康分析に基づいて、適切な食事提案を3つ作成してください。
各提案には料理名、説明、栄養情報を含めてください。

健康分析:
%s

回答は以下の構造のJSONでお願いします:
[
  {
    "name": "料理名",
    "description": "説明",
    "nutrition": "栄養情報"
  },
  ...
]`

// BuildPrompt embeds the advisory text into the user prompt.
func BuildPrompt(advisory string) string {
	return fmt.Sprintf(userPromptTemplate, advisory)
}
