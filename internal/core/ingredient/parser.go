package ingredient

import (
	"strings"
)

// ParsedLine 單一食材行的結構化結果
type ParsedLine struct {
	Raw       string
	Amount    *Amount // nil 表示未指定數量
	Unit      Unit    // 空字串表示無單位
	Family    Family
	Name      string
	Modifiers []string
}

// ParseLine 解析一行原始食材文字
// 掃描順序固定：數量 → 單位 → 名稱；數量與單位可缺，名稱必須存在
// 純函數：除唯讀表格外不碰任何共享狀態，可併發呼叫
func ParseLine(raw string) (*ParsedLine, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, ErrEmptyName
	}

	// 正規化：小寫、去變音符號、統一連接詞
	normalized := standardizeCharacters(foldAccents(line))

	// 括號內容整段剝離為修飾語（"(10 ounces each)"）
	normalized, parenModifiers := stripParentheticals(normalized)

	// 第一個頂層逗號之後的子句是修飾語候選
	head, clauses := splitClauses(normalized)

	tokens := tokenize(head)

	result := &ParsedLine{Raw: raw}

	// "about 2 cups" 的約略詞不影響解析
	for len(tokens) > 0 && approximationWords[tokens[0]] {
		tokens = tokens[1:]
	}

	if amount, consumed, err := resolveAmount(tokens); err == nil {
		result.Amount = &amount
		tokens = tokens[consumed:]
	}

	// 數量缺席時單位只會在行首被接受
	if unit, consumed, err := classifyUnit(tokens, result.Amount != nil); err == nil {
		result.Unit = unit
		tokens = tokens[consumed:]

		// 單位後置區間："a spoonful or two"
		tokens = extendRange(result, tokens)

		// "plus" 接續的同族第二段量測併入數量
		tokens = absorbPlus(result, tokens)

		// 斜線分隔的等值量測只保留第一組："1 1/5 cup/11fl oz/300ml"
		tokens = absorbAltMeasures(tokens)
	} else {
		// 無單位時檢查包裝模式：括號或行內的單件量測乘上包數
		parenModifiers = absorbPackSize(result, parenModifiers)
		if result.Unit == "" {
			tokens = absorbInlinePack(result, tokens)
		}
	}

	// 以 "or" 開頭的子句是替代食材，其餘子句是修飾語
	var clauseModifiers []string
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if isTrailingQualifier(clause) {
			clauseModifiers = append(clauseModifiers, clause)
			continue
		}
		if strings.HasPrefix(clause, "or ") {
			// 替代食材可能自帶量測（"or 1/2 teaspoon dried sage"），只留名稱
			tokens = append(tokens, "or")
			tokens = append(tokens, stripClauseMeasure(tokenize(clause)[1:])...)
			continue
		}
		clauseModifiers = append(clauseModifiers, clause)
	}

	// ScanName：必要階段
	cleaned, headModifiers := extractName(tokens)

	// 名稱尾端／內嵌的計數名詞提升為單位："8 garlic cloves" → unit=clove
	if result.Unit == "" {
		cleaned, result.Unit = promoteCountNoun(cleaned)
	}

	if len(cleaned) == 0 {
		return nil, ErrEmptyName
	}

	result.Name = strings.Join(cleaned, " ")
	result.Modifiers = mergeModifiers(parenModifiers, headModifiers, clauseModifiers)
	result.Family = resolveFamily(result)

	return result, nil
}

// resolveFamily 單位決定單位族；有數量無單位視為純計數
func resolveFamily(line *ParsedLine) Family {
	if line.Unit != "" {
		return line.Unit.GetFamily()
	}
	if line.Amount != nil {
		return FamilyCount
	}
	return FamilyUnspecified
}

// extendRange 處理跨過單位的區間（"1 cup or two"、"1 spoonful to 2"）
func extendRange(result *ParsedLine, tokens []string) []string {
	if result.Amount == nil || result.Amount.IsRange() {
		return tokens
	}
	if len(tokens) < 2 || (tokens[0] != "or" && tokens[0] != "to") {
		return tokens
	}
	second, m := matchNumber(tokens[1:])
	if m == 0 {
		return tokens
	}
	extended := newRange(result.Amount.low, second)
	result.Amount = &extended
	tokens = tokens[1+m:]
	// 區間第二段重複的單位一併消耗："1 cup or 2 cups"
	if unit, c, err := classifyUnit(tokens, true); err == nil && unit == result.Unit {
		tokens = tokens[c:]
	}
	if len(tokens) > 0 && tokens[0] == "of" {
		tokens = tokens[1:]
	}
	return tokens
}

// absorbPlus 合併 "plus" 接續的同族量測："1/3 cup plus 1 tablespoon" → 19/48 cup
func absorbPlus(result *ParsedLine, tokens []string) []string {
	if result.Amount == nil || result.Amount.IsRange() || result.Unit == "" {
		return tokens
	}
	if len(tokens) < 2 || tokens[0] != "plus" {
		return tokens
	}
	extra, m := matchNumber(tokens[1:])
	if m == 0 {
		return tokens
	}
	unit, c, err := classifyUnit(tokens[1+m:], true)
	if err != nil {
		return tokens
	}
	ratio, ok := unitRatio(unit, result.Unit)
	if !ok {
		return tokens
	}
	sum := newAmount(result.Amount.low.add(extra.mul(ratio)))
	result.Amount = &sum
	return tokens[1+m+c:]
}

// unitRatio 第二單位換算到第一單位的比值；限同單位族
func unitRatio(from, to Unit) (fraction, bool) {
	if a, ok := volumeInCups[from]; ok {
		if b, ok := volumeInCups[to]; ok {
			return a.div(b), true
		}
	}
	if a, ok := weightInGrams[from]; ok {
		if b, ok := weightInGrams[to]; ok {
			return a.div(b), true
		}
	}
	return fraction{}, false
}

// absorbAltMeasures 丟棄已有單位後接續的同值量測組（數字緊接單位）
func absorbAltMeasures(tokens []string) []string {
	for {
		_, m := matchNumber(tokens)
		if m == 0 {
			return tokens
		}
		_, c, err := classifyUnit(tokens[m:], true)
		if err != nil {
			return tokens
		}
		tokens = tokens[m+c:]
	}
}

// absorbPackSize 括號內的單件量測乘上外層包數："3 (100 gram) bags" → 300 g
// 括號必須整段是數量加單位，否則維持為修飾語
func absorbPackSize(result *ParsedLine, parenModifiers []string) []string {
	if result.Amount == nil || result.Amount.IsRange() || result.Unit != "" {
		return parenModifiers
	}
	for i, mod := range parenModifiers {
		toks := tokenize(mod)
		inner, m := matchNumber(toks)
		if m == 0 {
			continue
		}
		unit, c, err := classifyUnit(toks[m:], true)
		if err != nil || m+c != len(toks) {
			continue
		}
		scaled := newAmount(result.Amount.low.mul(inner))
		result.Amount = &scaled
		result.Unit = unit
		return append(parenModifiers[:i], parenModifiers[i+1:]...)
	}
	return parenModifiers
}

// absorbInlinePack 行內的單件量測後接容器詞："2 100 gram cans milk" → 200 g
func absorbInlinePack(result *ParsedLine, tokens []string) []string {
	if result.Amount == nil || result.Amount.IsRange() {
		return tokens
	}
	inner, m := matchNumber(tokens)
	if m == 0 {
		return tokens
	}
	unit, c, err := classifyUnit(tokens[m:], true)
	if err != nil {
		return tokens
	}
	rest := tokens[m+c:]
	if len(rest) == 0 || !isContainerToken(rest[0]) {
		return tokens
	}
	scaled := newAmount(result.Amount.low.mul(inner))
	result.Amount = &scaled
	result.Unit = unit
	rest = rest[1:]
	if len(rest) > 0 && rest[0] == "of" {
		rest = rest[1:]
	}
	return rest
}

func isContainerToken(tok string) bool {
	return containerWords[tok] || containerWords[singularizeToken(tok)]
}

// stripClauseMeasure 去掉替代子句自帶的數量與單位，只留食材名稱
func stripClauseMeasure(tokens []string) []string {
	if _, consumed, err := resolveAmount(tokens); err == nil {
		tokens = tokens[consumed:]
		if _, consumed, err := classifyUnit(tokens, true); err == nil {
			tokens = tokens[consumed:]
		}
	}
	return tokens
}

// promoteCountNoun 名稱中的計數名詞在還有其他 token 時移除並提升為單位
func promoteCountNoun(cleaned []string) ([]string, Unit) {
	if len(cleaned) < 2 {
		return cleaned, ""
	}
	for i, tok := range cleaned {
		if unit, ok := countNouns[tok]; ok {
			rest := make([]string, 0, len(cleaned)-1)
			rest = append(rest, cleaned[:i]...)
			rest = append(rest, cleaned[i+1:]...)
			return rest, unit
		}
	}
	return cleaned, ""
}

// mergeModifiers 依出現順序合併三組修飾語
func mergeModifiers(groups ...[]string) []string {
	var merged []string
	for _, group := range groups {
		merged = append(merged, group...)
	}
	return merged
}

// isTrailingQualifier 子句本身就是已知修飾語
func isTrailingQualifier(clause string) bool {
	for _, qualifier := range trailingQualifiers {
		if clause == qualifier {
			return true
		}
	}
	return false
}

// stripParentheticals 剝離括號片段
func stripParentheticals(s string) (string, []string) {
	var modifiers []string
	var sb strings.Builder
	depth := 0
	var paren strings.Builder
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
			if depth == 0 {
				if text := strings.TrimSpace(paren.String()); text != "" {
					modifiers = append(modifiers, text)
				}
				paren.Reset()
			}
		case depth > 0:
			paren.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), modifiers
}

// splitClauses 以頂層逗號切開
func splitClauses(s string) (string, []string) {
	parts := strings.Split(s, ",")
	head := parts[0]
	var clauses []string
	for _, part := range parts[1:] {
		clauses = append(clauses, strings.TrimSpace(part))
	}
	return head, clauses
}

// tokenize 切分 token 並拆開黏連形式
// "8oz" → "8","oz"；"half-lb" → "half","lb"；"1-2" → "1","-","2"
func tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, ",;:")
		if field == "" {
			continue
		}
		for _, tok := range splitToken(field) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func splitToken(tok string) []string {
	// 斜線連接的量測 "cup/11fl"、"oz/300ml"
	if parts := splitSlashMeasure(tok); len(parts) > 1 {
		return parts
	}
	// 數字區間 "1-2"
	if parts := splitNumericRange(tok); len(parts) > 1 {
		return parts
	}
	// 數字與單位相連 "8oz"
	if parts := splitFusedUnit(tok); len(parts) > 1 {
		return parts
	}
	// 數字單字與單位的連字複合 "half-lb"
	if parts := splitCompound(tok); len(parts) > 1 {
		return parts
	}
	// 整數後黏著 unicode 分數 "1½" 交給 matchFusedMixed，不在此拆開
	return []string{tok}
}

// splitSlashMeasure 把含數字的斜線 token 拆成量測片段
// 純分數（"1/2"）與帶分數（"3-1/2"）不拆；不含數字的斜線替代品（"orange/yellow"）交給名稱處理
func splitSlashMeasure(tok string) []string {
	if !strings.Contains(tok, "/") || !containsDigit(tok) {
		return []string{tok}
	}
	// 尺寸複合詞（"1/2-inch-thick"）交給名稱階段整個丟棄
	if strings.Contains(tok, "-") {
		return []string{tok}
	}
	if _, ok := matchFractionToken(tok); ok {
		return []string{tok}
	}
	if _, ok := matchFusedMixed(tok); ok {
		return []string{tok}
	}
	var out []string
	for _, part := range strings.Split(tok, "/") {
		if part == "" {
			continue
		}
		out = append(out, splitToken(part)...)
	}
	if len(out) <= 1 {
		return []string{tok}
	}
	return out
}

// splitNumericRange 兩側皆為整數或小數（非分數）時視為區間
func splitNumericRange(tok string) []string {
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 || strings.Contains(parts[1], "/") {
		return []string{tok}
	}
	if _, ok := matchDecimal(parts[0]); !ok {
		return []string{tok}
	}
	if _, ok := matchDecimal(parts[1]); !ok {
		return []string{tok}
	}
	return []string{parts[0], "-", parts[1]}
}
