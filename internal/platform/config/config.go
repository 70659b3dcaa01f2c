// Package config 加载配置: 代码默认值 < 配置文件 < 环境变量
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xxz807/cargofin/internal/finance/derive"
	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/service"
)

const (
	// EnvPrefix 环境变量前缀, 例如 CARGOFIN_SERVER_PORT
	EnvPrefix = "CARGOFIN"
	// PathEnv 指定配置文件路径的环境变量
	PathEnv     = "CARGOFIN_CONFIG"
	DefaultPath = "configs/config.yaml"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Finance  FinanceConfig  `mapstructure:"finance"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release / test
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogSQL       bool   `mapstructure:"log_sql"`
}

type FinanceConfig struct {
	PaymentTermDays      int            `mapstructure:"payment_term_days"`
	DefaultPaymentMethod string         `mapstructure:"default_payment_method"`
	PageSize             PageSizeConfig `mapstructure:"page_size"`
	// Now 固定 "当前时间", 为空时使用系统时钟 (RFC3339 或 YYYY-MM-DD)
	Now string `mapstructure:"now"`
}

type PageSizeConfig struct {
	Invoices    int `mapstructure:"invoices"`
	Receivables int `mapstructure:"receivables"`
	Payables    int `mapstructure:"payables"`
	Payments    int `mapstructure:"payments"`
	Ledger      int `mapstructure:"ledger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.log_sql", false)
	v.SetDefault("finance.payment_term_days", 30)
	v.SetDefault("finance.default_payment_method", string(domain.Cash))
	v.SetDefault("finance.page_size.invoices", 10)
	v.SetDefault("finance.page_size.receivables", 10)
	v.SetDefault("finance.page_size.payables", 10)
	v.SetDefault("finance.page_size.payments", 10)
	v.SetDefault("finance.page_size.ledger", 15)
	v.SetDefault("finance.now", "")
}

// Load 读取配置
// path 为空时依次尝试 CARGOFIN_CONFIG 和 configs/config.yaml, 默认路径不存在不算错误
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 环境变量: finance.page_size.ledger -> CARGOFIN_FINANCE_PAGE_SIZE_LEDGER
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Finance.PaymentTermDays <= 0 {
		return fmt.Errorf("finance.payment_term_days must be positive, got %d", c.Finance.PaymentTermDays)
	}
	if !domain.PaymentMethod(c.Finance.DefaultPaymentMethod).IsValid() {
		return fmt.Errorf("finance.default_payment_method %q is not a known method", c.Finance.DefaultPaymentMethod)
	}

	sizes := map[string]int{
		"invoices":    c.Finance.PageSize.Invoices,
		"receivables": c.Finance.PageSize.Receivables,
		"payables":    c.Finance.PageSize.Payables,
		"payments":    c.Finance.PageSize.Payments,
		"ledger":      c.Finance.PageSize.Ledger,
	}
	for view, n := range sizes {
		if n <= 0 {
			return fmt.Errorf("finance.page_size.%s must be positive, got %d", view, n)
		}
	}

	if _, err := c.Finance.fixedNow(); err != nil {
		return err
	}
	return nil
}

func (f FinanceConfig) fixedNow() (time.Time, error) {
	if f.Now == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, f.Now); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, f.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("finance.now %q must be RFC3339 or YYYY-MM-DD", f.Now)
	}
	return t, nil
}

// Clock 配置了 finance.now 时返回固定时钟, 否则返回 time.Now
func (c *Config) Clock() func() time.Time {
	fixed, err := c.Finance.fixedNow()
	if err != nil || fixed.IsZero() {
		return time.Now
	}
	return func() time.Time { return fixed }
}

// ServiceOptions 转换为财务服务参数
func (c *Config) ServiceOptions() service.Options {
	p := c.Finance.PageSize
	return service.Options{
		Derive: derive.Config{
			PaymentTermDays: c.Finance.PaymentTermDays,
			DefaultMethod:   domain.PaymentMethod(c.Finance.DefaultPaymentMethod),
		},
		PageSizes: service.PageSizes{
			Invoices:    p.Invoices,
			Receivables: p.Receivables,
			Payables:    p.Payables,
			Payments:    p.Payments,
			Ledger:      p.Ledger,
		},
		Clock: c.Clock(),
	}
}
