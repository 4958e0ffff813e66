package convert

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"reciplease/internal/pkg/common"
)

// Loader 負責載入換算資料集
// http(s) 來源走 resty，其餘視為本地檔案路徑
type Loader struct {
	client *resty.Client
}

// NewLoader 建立資料集載入器
func NewLoader(timeout time.Duration) *Loader {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Loader{client: client}
}

// Load 載入並驗證資料集
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	var dataset Dataset
	if err := common.ParseJSONBytes(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse conversion dataset: %w", err)
	}
	if len(dataset.Entries) == 0 {
		return nil, fmt.Errorf("conversion dataset %q has no entries", source)
	}
	return &dataset, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := l.client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch conversion dataset: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("conversion dataset request returned status %d", resp.StatusCode())
		}
		return resp.Body(), nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read conversion dataset: %w", err)
	}
	return data, nil
}
