package recipe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"reciplease/internal/core/cache"
	"reciplease/internal/core/convert"
	"reciplease/internal/core/ingredient"
	"reciplease/internal/infrastructure/config"
	"reciplease/internal/pkg/common"
)

// RecipeStore 持久化介面，nil 時略過存檔
type RecipeStore interface {
	SaveRecipe(ctx context.Context, recipe *common.RecipeRecord, records []*common.IngredientRecord, rejected []common.RejectedLine) error
}

// Service 食材解析服務
// 串起解析、區間代表值、公克換算、快取與持久化
type Service struct {
	config *config.Config
	table  *convert.Table
	cache  cache.ResultCache
	store  RecipeStore
}

// NewService 創建食材解析服務
// cache 與 store 可為 nil
func NewService(cfg *config.Config, table *convert.Table, resultCache cache.ResultCache, store RecipeStore) *Service {
	return &Service{
		config: cfg,
		table:  table,
		cache:  resultCache,
		store:  store,
	}
}

// ParseLine 解析單行食材文字為結構化紀錄
func (s *Service) ParseLine(ctx context.Context, rawLine string) (*common.IngredientRecord, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(rawLine)
	if trimmed == "" {
		return nil, common.ErrEmptyIngredientLine
	}
	if s.config.Parser.MaxLineLength > 0 && len(trimmed) > s.config.Parser.MaxLineLength {
		return nil, common.NewValidationError("ingredient line exceeds maximum length")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, trimmed); err == nil {
			record := *cached
			record.ID = common.GenerateUUID()
			return &record, nil
		}
	}

	parsed, err := ingredient.ParseLine(trimmed)
	if err != nil {
		common.LogParseResult(trimmed, time.Since(start), err, "")
		return nil, common.NewError(
			common.ErrCodeEmptyIngredientName,
			"no ingredient name found in line",
			http.StatusUnprocessableEntity,
			err,
		)
	}

	record := s.buildRecord(trimmed, parsed)

	if s.cache != nil {
		if err := s.cache.Set(ctx, trimmed, record); err != nil {
			common.LogWarn("快取寫入失敗",
				zap.String("raw_line", trimmed),
				zap.Error(err),
			)
		}
	}

	common.LogParseResult(trimmed, time.Since(start), nil, "")

	result := *record
	result.ID = common.GenerateUUID()
	return &result, nil
}

// buildRecord 套用區間政策與公克換算
func (s *Service) buildRecord(rawLine string, parsed *ingredient.ParsedLine) *common.IngredientRecord {
	record := &common.IngredientRecord{
		RawLine:        rawLine,
		Unit:           string(parsed.Unit),
		UnitFamily:     string(parsed.Family),
		IngredientName: parsed.Name,
		Modifiers:      parsed.Modifiers,
	}
	if record.Modifiers == nil {
		record.Modifiers = []string{}
	}

	if parsed.Amount != nil {
		representative := parsed.Amount.Mid()
		if s.config.Parser.RangePolicy == config.RangePolicyLow {
			representative = parsed.Amount.Low()
		}
		record.Amount = common.Float64Ptr(representative)
		if parsed.Amount.IsRange() {
			record.IsRange = true
			record.AmountLow = common.Float64Ptr(parsed.Amount.Low())
			record.AmountHigh = common.Float64Ptr(parsed.Amount.High())
		}
	}

	// 只有重量與體積可換算為公克
	family := parsed.Family
	if record.Amount != nil && (family == ingredient.FamilyWeight || family == ingredient.FamilyVolume) {
		grams, confidence, err := s.table.ToGrams(parsed.Name, parsed.Unit, *record.Amount)
		if err == nil {
			record.Grams = common.Float64Ptr(grams)
			record.Confidence = string(confidence)
		}
	}

	return record
}

// ParseLines 批次解析，單行錯誤不中斷整批
func (s *Service) ParseLines(ctx context.Context, lines []string) *common.BatchResult {
	result := &common.BatchResult{
		Records:  []*common.IngredientRecord{},
		Rejected: []common.RejectedLine{},
	}

	for i, line := range lines {
		record, err := s.ParseLine(ctx, line)
		if err != nil {
			result.Rejected = append(result.Rejected, rejectedLine(i, line, err))
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result
}

// ParseRecipe 解析整份食譜的食材行並持久化
func (s *Service) ParseRecipe(ctx context.Context, recipe *common.RecipeRecord) (*common.BatchResult, error) {
	if recipe == nil || len(recipe.Lines) == 0 {
		return nil, common.NewValidationError("recipe has no ingredient lines")
	}

	result := s.ParseLines(ctx, recipe.Lines)

	if s.store != nil {
		if err := s.store.SaveRecipe(ctx, recipe, result.Records, result.Rejected); err != nil {
			return nil, err
		}
	}

	common.LogInfo("食譜解析完成",
		zap.String("title", recipe.Title),
		zap.Int("parsed", len(result.Records)),
		zap.Int("rejected", len(result.Rejected)),
	)

	return result, nil
}

// rejectedLine 錯誤轉為拒收紀錄
func rejectedLine(index int, line string, err error) common.RejectedLine {
	code := common.ErrCodeEmptyIngredientName
	if customErr, ok := err.(*common.CustomError); ok {
		code = customErr.Code
	} else if common.IsValidationError(err) {
		code = common.ErrCodeInvalidRequest
	}
	return common.RejectedLine{
		Index:  index,
		Line:   line,
		Code:   code,
		Reason: err.Error(),
	}
}
