package config

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig is the file-backed billing policy: the fallback cutoff day
// used to seed the settings table, the baseline fee applied when a member's
// plan has no tariff row, and the marker stamped on generated debts.
type BillingConfig struct {
	CutoffDay        int    `mapstructure:"cutoffDay"`
	DefaultFee       int64  `mapstructure:"defaultFee"`
	RecurringConcept string `mapstructure:"recurringConcept"`
	SystemUser       string `mapstructure:"systemUser"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		CutoffDay:        19,
		DefaultFee:       15000,
		RecurringConcept: "Cuota",
		SystemUser:       "system",
	}
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/clubops/config")
	v.AddConfigPath("/etc/clubops")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CLUBOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.cutoffDay", defaults.CutoffDay)
	v.SetDefault("billing.defaultFee", defaults.DefaultFee)
	v.SetDefault("billing.recurringConcept", defaults.RecurringConcept)
	v.SetDefault("billing.systemUser", defaults.SystemUser)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

// NewStaticBillingConfigHolder wraps a fixed config, bypassing file watching.
// Meant for tests and one-shot tooling.
func NewStaticBillingConfigHolder(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.CutoffDay < 1 || cfg.CutoffDay > 28 {
		return fmt.Errorf("billing.cutoffDay must be between 1 and 28, got %d", cfg.CutoffDay)
	}
	if cfg.DefaultFee <= 0 {
		return fmt.Errorf("billing.defaultFee must be positive, got %d", cfg.DefaultFee)
	}
	if strings.TrimSpace(cfg.RecurringConcept) == "" {
		return fmt.Errorf("billing.recurringConcept cannot be empty")
	}
	if strings.TrimSpace(cfg.SystemUser) == "" {
		return fmt.Errorf("billing.systemUser cannot be empty")
	}
	return nil
}
