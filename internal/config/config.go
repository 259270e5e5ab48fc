package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SnapshotPath string
	CSVSeparator rune

	KafkaBrokers   []string
	KafkaSinkTopic string

	XLSXExportPath string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	CronSpec string
	RunOnce  bool

	Windows domain.ReportWindows
}

// Load reads configuration from environment variables, applying defaults
// where unset. The Kafka publisher is enabled when KAFKA_BROKERS is set, the
// xlsx export when XLSX_EXPORT_PATH is set; neither is required.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	sep, err := parseSeparator(envOrDefault("CSV_SEPARATOR", ";"))
	if err != nil {
		return nil, err
	}

	windows, err := loadWindows()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SnapshotPath:    os.Getenv("SNAPSHOT_PATH"),
		CSVSeparator:    sep,
		KafkaBrokers:    parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "srag-daily-report"),
		XLSXExportPath:  os.Getenv("XLSX_EXPORT_PATH"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CronSpec:        envOrDefault("CRON_SPEC", "0 6 * * *"),
		RunOnce:         os.Getenv("RUN_ONCE") == "true",
		Windows:         windows,
	}

	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}
	if cfg.KafkaPublishEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// KafkaPublishEnabled reports whether the Kafka report publisher should run.
func (c *Config) KafkaPublishEnabled() bool { return len(c.KafkaBrokers) > 0 }

// XLSXExportEnabled reports whether the workbook export should run.
func (c *Config) XLSXExportEnabled() bool { return c.XLSXExportPath != "" }

// loadWindows reads every report window, defaulting to the production set.
func loadWindows() (domain.ReportWindows, error) {
	w := domain.DefaultReportWindows()

	fields := []struct {
		env string
		dst *int
	}{
		{"CASE_VAR_PERIOD_1", &w.CaseVarShort},
		{"CASE_VAR_PERIOD_2", &w.CaseVarLong},
		{"DEATH_RATE_PERIOD", &w.DeathRate},
		{"ICU_RATE_PERIOD", &w.ICURate},
		{"VACC_RATE_PERIOD", &w.VaccRate},
		{"VACC_LABEL_WINDOW", &w.VaccLabel},
		{"CHART_DAILY_PERIOD", &w.ChartDaily},
		{"CHART_MONTHLY_PERIOD", &w.ChartMonthly},
	}
	for _, f := range fields {
		n, err := parseIntEnv(f.env, *f.dst)
		if err != nil {
			return domain.ReportWindows{}, err
		}
		if n <= 0 {
			return domain.ReportWindows{}, fmt.Errorf("%s must be positive, got %d", f.env, n)
		}
		*f.dst = n
	}
	return w, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseSeparator(s string) (rune, error) {
	switch s {
	case "tab", "\t":
		return '\t', nil
	default:
		runes := []rune(s)
		if len(runes) != 1 {
			return 0, fmt.Errorf("invalid CSV_SEPARATOR %q (want a single character)", s)
		}
		return runes[0], nil
	}
}
