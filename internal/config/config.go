package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the complete service configuration. Connection-level
// settings may be overridden by environment variables so deployments can
// keep the TOML file free of credentials.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Minio    MinioConfig    `toml:"minio"`
	Tax      TaxConfig      `toml:"tax"`
	Company  CompanyProfile `toml:"company"`
	Archive  ArchiveConfig  `toml:"archive"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DatabaseConfig contains the Postgres connection string.
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// RedisConfig contains cache connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MinioConfig contains object storage settings for archived challans.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// TaxConfig carries the GST split percentages. These are jurisdictional
// configuration, not constants.
type TaxConfig struct {
	CGSTRate float64 `toml:"cgst_rate"`
	SGSTRate float64 `toml:"sgst_rate"`
}

// CompanyProfile is the consignor identity printed on every challan.
type CompanyProfile struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
	GSTIN   string `toml:"gstin"`
	State   string `toml:"state"`
	Phone   string `toml:"phone"`
}

// ArchiveConfig controls the background PDF archival sweep.
type ArchiveConfig struct {
	Enabled       bool `toml:"enabled"`
	IntervalHours int  `toml:"interval_hours"`
	BatchSize     int  `toml:"batch_size"`
}

// Default returns the configuration used when no TOML file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Minio: MinioConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "challans",
		},
		Tax: TaxConfig{CGSTRate: 9.0, SGSTRate: 9.0},
		Company: CompanyProfile{
			Name:    "POLAR TRADING CO.",
			Address: "Plot 14, MIDC Industrial Area, Pune 411026",
			GSTIN:   "27AAACP1234F1ZV",
			State:   "Maharashtra (27)",
			Phone:   "+91-20-27120000",
		},
		Archive: ArchiveConfig{Enabled: true, IntervalHours: 24, BatchSize: 50},
	}
}

// Load reads configuration from a TOML file and applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Tax.CGSTRate < 0 || cfg.Tax.CGSTRate > 100 {
		return nil, fmt.Errorf("cgst_rate must be between 0 and 100")
	}
	if cfg.Tax.SGSTRate < 0 || cfg.Tax.SGSTRate > 100 {
		return nil, fmt.Errorf("sgst_rate must be between 0 and 100")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Minio.Endpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Minio.SecretKey = v
	}
	if os.Getenv("MINIO_USE_SSL") == "true" {
		cfg.Minio.UseSSL = true
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
