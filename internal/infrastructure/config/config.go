package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Parser     ParserConfig     `mapstructure:"parser"`
	Conversion ConversionConfig `mapstructure:"conversion"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Storage    StorageConfig    `mapstructure:"storage"`
	LogLevel   string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// 區間數量的代表值政策
const (
	RangePolicyMid = "mid"
	RangePolicyLow = "low"
)

// ParserConfig 解析器設定
type ParserConfig struct {
	// RangePolicy 區間數量的代表值選擇：mid 或 low
	RangePolicy string `mapstructure:"range_policy"`
	// MaxLineLength 單行長度上限，超過即拒絕
	MaxLineLength int `mapstructure:"max_line_length"`
}

// ConversionConfig 換算表設定
type ConversionConfig struct {
	// Source 資料集來源：本地 JSON 路徑或 http(s) URL
	Source string `mapstructure:"source"`
	// DefaultGramsPerCup 全域預設密度（以水為基準，1 g/mL）
	DefaultGramsPerCup float64       `mapstructure:"default_grams_per_cup"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	// Redis 為空時使用記憶體快取
	RedisAddr string `mapstructure:"redis_addr"`
}

// StorageConfig 持久化設定
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（允許不存在）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("conversion.source", "CONVERSION_SOURCE")
	viper.BindEnv("conversion.default_grams_per_cup", "CONVERSION_DEFAULT_GRAMS_PER_CUP")
	viper.BindEnv("parser.range_policy", "PARSER_RANGE_POLICY")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("storage.enabled", "STORAGE_ENABLED")
	viper.BindEnv("storage.path", "STORAGE_PATH")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "reciplease")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 解析器設定
	viper.SetDefault("parser.range_policy", "mid")
	viper.SetDefault("parser.max_line_length", 512)

	// 換算表設定
	viper.SetDefault("conversion.source", "data/conversions.json")
	viper.SetDefault("conversion.default_grams_per_cup", 236.59)
	viper.SetDefault("conversion.timeout", "10s")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_addr", "")

	// 持久化設定
	viper.SetDefault("storage.enabled", true)
	viper.SetDefault("storage.path", "data/reciplease.db")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證解析器設定
	if config.Parser.RangePolicy != RangePolicyMid && config.Parser.RangePolicy != RangePolicyLow {
		return fmt.Errorf("invalid range policy: %s", config.Parser.RangePolicy)
	}
	if config.Parser.MaxLineLength <= 0 {
		return fmt.Errorf("invalid max line length")
	}

	// 驗證換算表設定
	if config.Conversion.Source == "" {
		return fmt.Errorf("conversion source is required")
	}
	if config.Conversion.DefaultGramsPerCup <= 0 {
		return fmt.Errorf("invalid default grams per cup")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證持久化設定
	if config.Storage.Enabled && config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	return nil
}
