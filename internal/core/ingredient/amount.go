package ingredient

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNoAmount 掃描範圍內沒有任何數值 token
// 非致命：該行視為「未指定數量」（例如 "salt to taste"）
var ErrNoAmount = errors.New("no amount found")

// fraction 精確分數，避免小數量食譜的浮點誤差
type fraction struct {
	num int64
	den int64
}

func newFraction(num, den int64) fraction {
	if den == 0 {
		den = 1
	}
	g := gcd(num, den)
	return fraction{num / g, den / g}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func (f fraction) add(o fraction) fraction {
	return newFraction(f.num*o.den+o.num*f.den, f.den*o.den)
}

func (f fraction) mul(o fraction) fraction {
	return newFraction(f.num*o.num, f.den*o.den)
}

func (f fraction) div(o fraction) fraction {
	return newFraction(f.num*o.den, f.den*o.num)
}

func (f fraction) float() float64 {
	return float64(f.num) / float64(f.den)
}

// Amount 非負的精確數量，必要時帶區間（"1-2 cups"）
type Amount struct {
	low    fraction
	high   fraction
	ranged bool
}

func newAmount(f fraction) Amount {
	return Amount{low: f, high: f}
}

func newRange(low, high fraction) Amount {
	return Amount{low: low, high: high, ranged: true}
}

// IsRange 是否為區間數量
func (a Amount) IsRange() bool { return a.ranged }

// Low 下界（非區間時等於數值本身）
func (a Amount) Low() float64 { return round4(a.low.float()) }

// High 上界
func (a Amount) High() float64 { return round4(a.high.float()) }

// Mid 中點；與原始資料一致保留四位小數
func (a Amount) Mid() float64 {
	mid := a.low.add(a.high)
	return round4(mid.float() / 2)
}

// Equal 精確比較；要求所有等值拼寫產生相同 Amount
func (a Amount) Equal(b Amount) bool {
	return a.ranged == b.ranged &&
		a.low.num*b.low.den == b.low.num*a.low.den &&
		a.high.num*b.high.den == b.high.num*a.high.den
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// resolveAmount 從 token 序列開頭解析數量
// 回傳解析結果與消耗的 token 數；最長匹配優先（"1 1/2" 不會被 "1" 搶先）
func resolveAmount(tokens []string) (Amount, int, error) {
	first, n := matchNumber(tokens)
	if n == 0 {
		return Amount{}, 0, ErrNoAmount
	}

	// 區間："1-2"（已在 token 化時拆開）、"1 to 2"、"one or two"
	rest := tokens[n:]
	if len(rest) >= 2 && (rest[0] == "to" || rest[0] == "or" || rest[0] == "-") {
		if second, m := matchNumber(rest[1:]); m > 0 {
			return newRange(first, second), n + 1 + m, nil
		}
	}

	return newAmount(first), n, nil
}

// matchNumber 依優先順序嘗試每一種數值形式
// 1. 帶分數（"1 1/2"、"1½"）
// 2. 純分數（"1/2"、"⅕"）
// 3. 整數或小數（"2"、"0.5"）
// 4. 拼寫數字（"one and a half"、"three quarters"、"a few"、"half"）
func matchNumber(tokens []string) (fraction, int) {
	if len(tokens) == 0 {
		return fraction{}, 0
	}

	// 帶分數：整數 token 後接分數 token
	if whole, ok := matchInteger(tokens[0]); ok && len(tokens) > 1 {
		if frac, ok := matchFractionToken(tokens[1]); ok {
			return whole.add(frac), 2
		}
	}

	// 單一 token 內的帶分數："1½"、"3-1/2"
	if f, ok := matchFusedMixed(tokens[0]); ok {
		return f, 1
	}

	// 純分數
	if f, ok := matchFractionToken(tokens[0]); ok {
		return f, 1
	}

	// 整數或小數
	if f, ok := matchDecimal(tokens[0]); ok {
		return f, 1
	}

	// 拼寫數字
	return matchWords(tokens)
}

// matchInteger 純整數 token
func matchInteger(tok string) (fraction, bool) {
	if tok == "" {
		return fraction{}, false
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || v < 0 {
		return fraction{}, false
	}
	return fraction{v, 1}, true
}

// matchDecimal 整數或小數 token
func matchDecimal(tok string) (fraction, bool) {
	if f, ok := matchInteger(tok); ok {
		return f, true
	}
	if !strings.Contains(tok, ".") {
		return fraction{}, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return fraction{}, false
	}
	// 以萬分位精度轉回分數，足夠涵蓋食譜數量
	return newFraction(int64(math.Round(v*10000)), 10000), true
}

// matchFractionToken ASCII 分數 "1/2" 或 unicode 分數字元
func matchFractionToken(tok string) (fraction, bool) {
	if tok == "" {
		return fraction{}, false
	}

	runes := []rune(tok)
	if len(runes) == 1 {
		if f, ok := vulgarFractions[runes[0]]; ok {
			return f, true
		}
	}

	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return fraction{}, false
	}
	num, err1 := strconv.ParseInt(parts[0], 10, 64)
	den, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil || num < 0 || den <= 0 {
		return fraction{}, false
	}
	return newFraction(num, den), true
}

// matchFusedMixed 單一 token 內的帶分數："1½"、"3-1/2"、"1-1/2"
func matchFusedMixed(tok string) (fraction, bool) {
	// 整數後直接黏著 unicode 分數
	runes := []rune(tok)
	if len(runes) >= 2 {
		if frac, ok := vulgarFractions[runes[len(runes)-1]]; ok {
			if whole, ok := matchInteger(string(runes[:len(runes)-1])); ok {
				return whole.add(frac), true
			}
		}
	}

	// 連字號連接："3-1/2"
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) == 2 {
		if whole, ok := matchInteger(parts[0]); ok {
			if frac, ok := matchFractionToken(parts[1]); ok {
				return whole.add(frac), true
			}
		}
	}
	return fraction{}, false
}

// matchWords 拼寫數字片語，最長優先
// "one and a half" → 3/2；"three quarters" → 3/4；"a few" → 3；"half" → 1/2
func matchWords(tokens []string) (fraction, int) {
	if len(tokens) == 0 {
		return fraction{}, 0
	}

	// "a few" / "a couple" 要早於 "a" 單獨匹配
	if len(tokens) >= 2 && (tokens[0] == "a" || tokens[0] == "an") {
		if v, ok := wordValues[tokens[1]]; ok && tokens[1] != "one" {
			return v, 2
		}
	}

	whole, ok := wordValues[tokens[0]]
	if !ok {
		// 分數單字單獨出現："half cup"
		if frac, ok := fractionWords[singularizeToken(tokens[0])]; ok {
			return frac, 1
		}
		return fraction{}, 0
	}

	// "one and a half" / "one and a fourth"
	if len(tokens) >= 4 && tokens[1] == "and" && (tokens[2] == "a" || tokens[2] == "an") {
		if frac, ok := fractionWords[singularizeToken(tokens[3])]; ok {
			return whole.add(frac), 4
		}
	}

	// "one fourth" / "three quarters"：整數單字乘上分數單字
	if len(tokens) >= 2 {
		if frac, ok := fractionWords[singularizeToken(tokens[1])]; ok {
			return whole.mul(frac), 2
		}
	}

	return whole, 1
}
