package ingredient

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyName 去除數量與單位後沒有剩下任何食材名稱
// 致命：該行格式錯誤，整行拒絕而非產出空白記錄
var ErrEmptyName = errors.New("empty ingredient name")

// stripAccents 去除變音符號（jalapeño → jalapeno）
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents 折疊為小寫 ASCII
func foldAccents(s string) string {
	result, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// extractName 清理名稱並收集被捨棄的修飾語
// 輸入是去除數量與單位後的 token 串；回傳 (清理後 token, 修飾語)
func extractName(tokens []string) ([]string, []string) {
	var modifiers []string

	// 行尾修飾語："to taste"、"or as needed"、"optional"
	tokens, modifiers = stripTrailingQualifiers(tokens, modifiers)

	// 截斷標記之後的文字全部視為修飾語："such as colemans"、"for frying"
	tokens, modifiers = cutAtTailMarkers(tokens, modifiers)

	// "or" 的多個替代品保留最後一項："kidney or pinto beans" → "pinto beans"
	tokens = keepLastAlternative(tokens)

	cleaned := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		// "orange/yellow" 這類斜線替代品保留最後一項
		if idx := strings.LastIndex(tok, "/"); idx >= 0 && !containsDigit(tok) {
			tok = tok[idx+1:]
		}
		for _, part := range splitDescriptorCompound(tok) {
			if dropNameToken(part) {
				continue
			}
			cleaned = append(cleaned, singularizeToken(part))
		}
	}

	return cleaned, modifiers
}

// stripTrailingQualifiers 依最長優先剝離行尾修飾語
func stripTrailingQualifiers(tokens []string, modifiers []string) ([]string, []string) {
	joined := strings.Join(tokens, " ")
	for _, qualifier := range trailingQualifiers {
		if joined == qualifier {
			return nil, append(modifiers, qualifier)
		}
		if strings.HasSuffix(joined, " "+qualifier) {
			head := strings.TrimSuffix(joined, " "+qualifier)
			return strings.Fields(head), append(modifiers, qualifier)
		}
	}
	return tokens, modifiers
}

// cutAtTailMarkers 在第一個截斷標記處切開
func cutAtTailMarkers(tokens []string, modifiers []string) ([]string, []string) {
	for i := range tokens {
		for _, marker := range tailMarkers {
			parts := strings.Fields(marker)
			if i+len(parts) > len(tokens) {
				continue
			}
			if !equalTokens(tokens[i:i+len(parts)], parts) {
				continue
			}
			// 行首的標記不算（"like" 不會出現在行首，保險起見）
			if i == 0 {
				continue
			}
			tail := strings.Join(tokens[i:], " ")
			return tokens[:i], append(modifiers, tail)
		}
	}
	return tokens, modifiers
}

func equalTokens(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// keepLastAlternative "x or y" 保留 y
func keepLastAlternative(tokens []string) []string {
	last := -1
	for i, tok := range tokens {
		if tok == "or" {
			last = i
		}
	}
	if last < 0 || last == len(tokens)-1 {
		return tokens
	}
	return tokens[last+1:]
}

// splitDescriptorCompound 拆開連字號複合詞
// 任一部分是描述詞或數字時整個捨棄（"no-salt-added"、"1/2-inch-thick"）
// 否則以空白連回（"mac-and-cheese" → "mac and cheese"）
func splitDescriptorCompound(tok string) []string {
	if !strings.Contains(tok, "-") {
		return []string{tok}
	}
	parts := strings.Split(tok, "-")
	for _, part := range parts {
		if part == "" || containsDigit(part) || nameStopwords[part] || isDescriptorPart(part) {
			return nil
		}
	}
	return parts
}

// isDescriptorPart 複合詞中指向描述性質的片段（"ready-to-serve"、"oven-to-table"）
func isDescriptorPart(part string) bool {
	switch part {
	case "to", "in", "all", "size", "cut", "style", "free", "added", "inch",
		"thick", "fat", "fiber", "quality", "purpose", "high", "low", "extra", "non":
		return true
	}
	return false
}

// dropNameToken 名稱中要移除的 token
func dropNameToken(tok string) bool {
	if tok == "" || tok == "-" || tok == "or" {
		return true
	}
	if containsDigit(tok) {
		return true
	}
	if strings.ContainsAny(tok, "®™%\"") {
		return true
	}
	// 品牌所有格："coleman's mustard"
	if strings.HasSuffix(tok, "'s") {
		return true
	}
	if nameStopwords[tok] || containerWords[tok] {
		return true
	}
	// 停用詞與容器詞也要擋住複數形："cans"、"bags"
	if singular := singularizeToken(tok); nameStopwords[singular] || containerWords[singular] {
		return true
	}
	// 殘留的量測 token（替代子句、斜線量測）不得進入名稱
	if _, ok := unitSynonyms[normalizeUnitToken(tok)]; ok {
		return true
	}
	if tok == "fl" || tok == "fluid" {
		return true
	}
	// 拼寫數字與冠詞不屬於食材名稱
	if _, ok := wordValues[tok]; ok {
		return true
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
		if _, ok := vulgarFractions[r]; ok {
			return true
		}
	}
	return false
}

// singularizeToken 簡單的複數還原
// 不做更深的詞幹處理，避免不同食材被錯誤合併
func singularizeToken(tok string) string {
	if len(tok) <= 3 {
		return tok
	}
	if singular, ok := singularExceptions[tok]; ok {
		return singular
	}
	if strings.HasSuffix(tok, "ies") {
		return tok[:len(tok)-3] + "y"
	}
	// 只有特定結尾會去掉 "es"（peaches、octopuses、tomatoes）
	for _, suffix := range []string{"ches", "shes", "sses", "xes", "zes", "oes", "uses"} {
		if strings.HasSuffix(tok, suffix) {
			return tok[:len(tok)-2]
		}
	}
	// 拼字變體 "tomatoe" → "tomato"
	if strings.HasSuffix(tok, "oe") {
		return tok[:len(tok)-1]
	}
	if strings.HasSuffix(tok, "s") &&
		!strings.HasSuffix(tok, "ss") &&
		!strings.HasSuffix(tok, "us") &&
		!strings.HasSuffix(tok, "is") {
		return tok[:len(tok)-1]
	}
	return tok
}

// standardizeCharacters 統一連接詞與符號："mac&cheese"、"mac n cheese" → "mac and cheese"
func standardizeCharacters(s string) string {
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, " n ", " and ")
	s = strings.ReplaceAll(s, " 'n ", " and ")
	return s
}
