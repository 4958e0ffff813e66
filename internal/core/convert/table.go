package convert

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"reciplease/internal/core/ingredient"
)

// Confidence 換算結果的可信度
type Confidence string

const (
	ConfidenceExact   Confidence = "exact"   // 重量單位或表中精確命中
	ConfidenceGeneric Confidence = "generic" // 以名稱主詞命中
	ConfidenceDefault Confidence = "default" // 水當量預設密度
)

// 重量單位換算常數（公克）
var gramsPerWeightUnit = map[ingredient.Unit]float64{
	ingredient.UnitGram:     1,
	ingredient.UnitKilogram: 1000,
	ingredient.UnitOunce:    28.35,
	ingredient.UnitPound:    453.59,
}

// 體積單位換算為杯
var cupsPerVolumeUnit = map[ingredient.Unit]float64{
	ingredient.UnitCup:        1,
	ingredient.UnitTeaspoon:   1.0 / 48.0,
	ingredient.UnitTablespoon: 1.0 / 16.0,
	ingredient.UnitFluidOunce: 1.0 / 8.0,
	ingredient.UnitPint:       2,
	ingredient.UnitQuart:      4,
	ingredient.UnitGallon:     16,
	ingredient.UnitMilliliter: 0.0042268,
	ingredient.UnitLiter:      4.2268,
}

// Entry 單一食材的密度資料
type Entry struct {
	Name        string  `json:"name"`
	GramsPerCup float64 `json:"grams_per_cup"`
	Source      string  `json:"source,omitempty"`
}

// Dataset 換算資料集檔案格式
type Dataset struct {
	Version string  `json:"version"`
	Source  string  `json:"source,omitempty"`
	Entries []Entry `json:"entries"`
}

// Table 啟動時載入一次，之後唯讀，可安全併發查詢
type Table struct {
	entries            map[string]Entry
	version            string
	defaultGramsPerCup float64
}

// NewTable 建立換算表
func NewTable(dataset *Dataset, defaultGramsPerCup float64) (*Table, error) {
	if defaultGramsPerCup <= 0 {
		return nil, fmt.Errorf("invalid default grams per cup: %v", defaultGramsPerCup)
	}
	entries := make(map[string]Entry, len(dataset.Entries))
	for _, entry := range dataset.Entries {
		key := strings.ToLower(strings.TrimSpace(entry.Name))
		if key == "" {
			return nil, fmt.Errorf("dataset entry with empty name")
		}
		if entry.GramsPerCup <= 0 {
			return nil, fmt.Errorf("invalid grams per cup for %q: %v", entry.Name, entry.GramsPerCup)
		}
		entry.Name = key
		entries[key] = entry
	}
	return &Table{
		entries:            entries,
		version:            dataset.Version,
		defaultGramsPerCup: defaultGramsPerCup,
	}, nil
}

// Version 資料集版本標記
func (t *Table) Version() string {
	return t.version
}

// Len 表內食材數
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup 查詢單一食材的密度資料
func (t *Table) Lookup(name string) (Entry, bool) {
	entry, ok := t.entries[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}

// Keys 依字母序回傳所有食材鍵
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ToGrams 將數量換算為公克
// 重量單位走固定常數且永遠 exact；體積單位先化為杯再乘密度，
// 查表順序：全名精確命中 → 名稱主詞 → 水當量預設。
// 計數與無單位不可換算。
func (t *Table) ToGrams(name string, unit ingredient.Unit, amount float64) (float64, Confidence, error) {
	if amount < 0 {
		return 0, "", fmt.Errorf("negative amount: %v", amount)
	}

	if grams, ok := gramsPerWeightUnit[unit]; ok {
		return round4(amount * grams), ConfidenceExact, nil
	}

	cups, ok := cupsPerVolumeUnit[unit]
	if !ok {
		return 0, "", fmt.Errorf("unit %q is not convertible to grams", string(unit))
	}

	gramsPerCup, confidence := t.density(name)
	return round4(amount * cups * gramsPerCup), confidence, nil
}

// density 密度查詢，附帶命中層級
func (t *Table) density(name string) (float64, Confidence) {
	key := strings.ToLower(strings.TrimSpace(name))
	if entry, ok := t.entries[key]; ok {
		return entry.GramsPerCup, ConfidenceExact
	}
	// 主詞命中："all purpose flour" → "flour"
	if fields := strings.Fields(key); len(fields) > 1 {
		if entry, ok := t.entries[fields[len(fields)-1]]; ok {
			return entry.GramsPerCup, ConfidenceGeneric
		}
	}
	return t.defaultGramsPerCup, ConfidenceDefault
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
