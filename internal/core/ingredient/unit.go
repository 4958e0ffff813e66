package ingredient

import (
	"errors"
	"strings"
)

// ErrNoUnit token 看起來不是任何已知單位
// 非致命：token 會回到食材名稱中，單位維持 unspecified
var ErrNoUnit = errors.New("no unit recognized")

// classifyUnit 從 token 序列開頭解析單位
// 回傳規範單位與消耗的 token 數（含後綴 "of"）
// hadAmount 控制單字母縮寫："1 c milk" 的 "c" 是 cup，
// 但沒有數量時開頭的 "c" 只是食材名稱的一部分
func classifyUnit(tokens []string, hadAmount bool) (Unit, int, error) {
	if len(tokens) == 0 {
		return "", 0, ErrNoUnit
	}

	// 雙 token 同義詞優先："fl oz"、"table spoon"、"kilo gram"
	if len(tokens) >= 2 {
		pair := [2]string{normalizeUnitToken(tokens[0]), normalizeUnitToken(tokens[1])}
		if unit, ok := unitPairSynonyms[pair]; ok {
			return unit, 2 + skipOf(tokens[2:]), nil
		}
	}

	tok := normalizeUnitToken(tokens[0])
	if tok == "" {
		return "", 0, ErrNoUnit
	}

	// 單字母縮寫需要邊界條件：前方必須已有數量
	if len(tok) == 1 {
		if !hadAmount {
			return "", 0, ErrNoUnit
		}
		if unit, ok := singleLetterUnits[tok]; ok {
			return unit, 1 + skipOf(tokens[1:]), nil
		}
		return "", 0, ErrNoUnit
	}

	if unit, ok := unitSynonyms[tok]; ok {
		return unit, 1 + skipOf(tokens[1:]), nil
	}

	// 計數名詞："clove"、"stick"、"pinch"
	if unit, ok := countNouns[tok]; ok {
		return unit, 1 + skipOf(tokens[1:]), nil
	}

	return "", 0, ErrNoUnit
}

// normalizeUnitToken 去句點、小寫、還原複數，讓 "Tablespoons." 與 "tbsp" 同義
func normalizeUnitToken(tok string) string {
	tok = strings.ToLower(strings.Trim(tok, "."))
	tok = strings.ReplaceAll(tok, ".", "") // "fl.oz" 內部句點
	if len(tok) <= 1 {
		return tok
	}
	if _, ok := unitSynonyms[tok]; ok {
		return tok
	}
	if _, ok := countNouns[tok]; ok {
		return tok
	}
	singular := singularizeToken(tok)
	if _, ok := unitSynonyms[singular]; ok {
		return singular
	}
	if _, ok := countNouns[singular]; ok {
		return singular
	}
	return tok
}

// skipOf 跳過單位後的 "of"（"cup of milk"）
func skipOf(tokens []string) int {
	if len(tokens) > 0 && tokens[0] == "of" {
		return 1
	}
	return 0
}

// splitFusedUnit 拆開數字與單位直接相連的 token："8oz" → "8","oz"
// 沒有混合時回傳原 token
func splitFusedUnit(tok string) []string {
	split := len(tok)
	for i, r := range tok {
		if r >= '0' && r <= '9' || r == '.' || r == '/' {
			continue
		}
		split = i
		break
	}
	if split == 0 || split == len(tok) {
		return []string{tok}
	}
	head, tail := tok[:split], tok[split:]
	if _, ok := matchDecimal(head); !ok {
		if _, ok := matchFractionToken(head); !ok {
			return []string{tok}
		}
	}
	// 後半必須是可識別的單位，否則維持原樣（例如 "2nd"）
	if _, _, err := classifyUnit([]string{tail}, true); err != nil {
		return []string{tok}
	}
	return []string{head, tail}
}

// splitCompound 拆開數字單字與單位的連字複合："half-lb" → "half","lb"
func splitCompound(tok string) []string {
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 {
		return []string{tok}
	}
	left := strings.ToLower(parts[0])
	_, isWord := wordValues[left]
	if !isWord {
		if _, ok := fractionWords[left]; !ok {
			return []string{tok}
		}
	}
	if _, _, err := classifyUnit([]string{parts[1]}, true); err != nil {
		return []string{tok}
	}
	return []string{left, parts[1]}
}
