package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
)

// 支持的存储驱动。
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server         ServerConfig
	Chat           ChatConfig
	Store          StoreConfig
	AuthTokens     string
	MetricsEnabled bool
}

// Load 从环境变量加载配置并校验。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	st, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	metricsEnabled, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server:         server,
		Chat:           chat,
		Store:          st,
		AuthTokens:     strings.TrimSpace(os.Getenv("AUTH_TOKENS")),
		MetricsEnabled: metricsEnabled,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查跨字段约束，一次性返回所有错误。
func (c *Config) Validate() error {
	var errs []error

	if c.Chat.ThinkingDelay < 0 {
		errs = append(errs, fmt.Errorf("CHAT_THINKING_DELAY must not be negative, got %s", c.Chat.ThinkingDelay))
	}
	if _, ok := triage.ParseLanguage(c.Chat.DefaultLanguage); !ok {
		errs = append(errs, fmt.Errorf("unsupported CHAT_DEFAULT_LANGUAGE %q", c.Chat.DefaultLanguage))
	}
	if c.Store.PersistTimeout <= 0 {
		errs = append(errs, fmt.Errorf("PERSIST_TIMEOUT must be positive, got %s", c.Store.PersistTimeout))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORE_DRIVER=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q (want memory, postgres or sqlite)", c.Store.Driver))
	}

	return errors.Join(errs...)
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ChatConfig 描述对话引擎相关配置。
type ChatConfig struct {
	ThinkingDelay   time.Duration
	DefaultLanguage string
	// RandomSeed 固定通用回复的随机序列，nil 表示按时间播种。
	RandomSeed *uint64
}

func loadChatConfig() (ChatConfig, error) {
	delay, err := parseDurationEnv("CHAT_THINKING_DELAY", 0)
	if err != nil {
		return ChatConfig{}, err
	}

	seed, err := parseOptionalIntEnv("CHAT_RANDOM_SEED")
	if err != nil {
		return ChatConfig{}, err
	}
	var randomSeed *uint64
	if seed != nil {
		if *seed < 0 {
			return ChatConfig{}, fmt.Errorf("invalid CHAT_RANDOM_SEED value %d: must not be negative", *seed)
		}
		v := uint64(*seed)
		randomSeed = &v
	}

	return ChatConfig{
		ThinkingDelay:   delay,
		DefaultLanguage: getEnvOrDefault("CHAT_DEFAULT_LANGUAGE", string(triage.English)),
		RandomSeed:      randomSeed,
	}, nil
}

// StoreConfig 描述会话日志与预约的持久化配置。
type StoreConfig struct {
	Driver         string
	DatabaseURL    string
	SQLitePath     string
	PersistTimeout time.Duration
}

func loadStoreConfig() (StoreConfig, error) {
	timeout, err := parseDurationEnv("PERSIST_TIMEOUT", 5*time.Second)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		Driver:         strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMemory)),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:     getEnvOrDefault("SQLITE_PATH", "./data/mindwell.db"),
		PersistTimeout: timeout,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

// parseDurationEnv 接受 time.ParseDuration 格式，纯数字按毫秒处理。
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
