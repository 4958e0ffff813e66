package common

// IngredientRecord 結構化食材記錄
// 由解析核心產生，適合 JSON 序列化後寫入下游 ingredients 欄位
type IngredientRecord struct {
	ID             string   `json:"id,omitempty"`
	RawLine        string   `json:"raw_line"`
	Amount         *float64 `json:"amount"`                // 代表值；區間時為中點
	AmountLow      *float64 `json:"amount_low,omitempty"`  // 區間下界
	AmountHigh     *float64 `json:"amount_high,omitempty"` // 區間上界
	IsRange        bool     `json:"is_range,omitempty"`
	Unit           string   `json:"unit,omitempty"` // 規範單位；無單位時為空
	UnitFamily     string   `json:"unit_family"`    // volume / weight / count / unspecified
	IngredientName string   `json:"ingredient_name"`
	Modifiers      []string `json:"modifiers"`
	Grams          *float64 `json:"grams,omitempty"`
	Confidence     string   `json:"confidence,omitempty"` // exact / generic / default
}

// RejectedLine 無法解析的食材行
// 整批處理時逐行累積，不中斷批次
type RejectedLine struct {
	Index  int    `json:"index"`
	Line   string `json:"line"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// BatchResult 批次解析結果
type BatchResult struct {
	Records  []*IngredientRecord `json:"records"`
	Rejected []RejectedLine      `json:"rejected"`
}

// RecipeRecord 上游擷取管線送來的食譜記錄
// 爬蟲與 HTML 擷取皆為外部協作者，這裡只接收其輸出
type RecipeRecord struct {
	Domain      string   `json:"domain"`
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Servings    string   `json:"servings,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`     // 0.0 ~ 1.0
	Ratings     *int     `json:"ratings,omitempty"`    // 評分數量
	MakeAgain   *float64 `json:"make_again,omitempty"` // 0.0 ~ 1.0
	Lines       []string `json:"lines"`                // 原始食材行
}

// Float64Ptr 回傳 float64 指標
func Float64Ptr(v float64) *float64 {
	return &v
}
