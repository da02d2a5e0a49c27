// Package config loads engine and service configuration via viper,
// following the env-first/.env-fallback pattern the teacher's
// backend/pkg/config uses: SetDefault for every tunable, AutomaticEnv,
// then an optional .env file, unmarshalled into a mapstructure-tagged
// struct.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig holds every tunable spec.md §6's input-configuration table
// names.
type EngineConfig struct {
	CSVPath        string `mapstructure:"CSV_PATH"`
	PointsColumn   string `mapstructure:"POINTS_COLUMN"`
	SalaryColumn   string `mapstructure:"SALARY_COLUMN"`
	PositionColumn string `mapstructure:"POSITION_COLUMN"`

	PopulationSize int     `mapstructure:"POPULATION_SIZE"`
	NGenerations   int     `mapstructure:"N_GENERATIONS"`
	StopCriteria   int     `mapstructure:"STOP_CRITERIA"`
	EliteDivisor   int     `mapstructure:"ELITE_DIVISOR"`
	EliteMethod    string  `mapstructure:"ELITE_METHOD"`
	SelectMethod   string  `mapstructure:"SELECT_METHOD"`
	CrossoverMethod string `mapstructure:"CROSSOVER_METHOD"`
	MutationRate   float64 `mapstructure:"MUTATION_RATE"`
	Seed           int64   `mapstructure:"SEED"`

	TargetLineups       int     `mapstructure:"TARGET_LINEUPS"`
	DiversityWeight      float64 `mapstructure:"DIVERSITY_WEIGHT"`
	MinOverlapThreshold  float64 `mapstructure:"MIN_OVERLAP_THRESHOLD"`
	DiversityMethod      string  `mapstructure:"DIVERSITY_METHOD"`
	Mode                 string  `mapstructure:"MODE"`
	LineupPoolSize       int     `mapstructure:"LINEUP_POOL_SIZE"`

	SalaryCap     int      `mapstructure:"SALARY_CAP"`
	FlexPositions []string `mapstructure:"FLEX_POSITIONS"`

	EnableProfiling bool `mapstructure:"ENABLE_PROFILING"`
}

// ServiceConfig holds the HTTP/cache/websocket shell's own tunables,
// mirroring backend/pkg/config's Config shape for the ambient concerns
// (port, environment, Redis) while dropping everything the teacher's
// multi-service monorepo needed that this engine does not (DB URL, JWT,
// external data-provider API keys, SMS/Supabase/Twilio integration).
type ServiceConfig struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	RedisURL string `mapstructure:"REDIS_URL"`

	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	OptimizationTimeoutSeconds int `mapstructure:"OPTIMIZATION_TIMEOUT"`
}

// LoadEngineConfig reads engine tunables from the environment (and an
// optional .env file), applying spec.md §6's defaults.
func LoadEngineConfig() (*EngineConfig, error) {
	v := newViper()

	v.SetDefault("POINTS_COLUMN", "proj")
	v.SetDefault("SALARY_COLUMN", "salary")
	v.SetDefault("POSITION_COLUMN", "pos")

	v.SetDefault("POPULATION_SIZE", 5000)
	v.SetDefault("N_GENERATIONS", 50)
	v.SetDefault("STOP_CRITERIA", 10)
	v.SetDefault("ELITE_DIVISOR", 5)
	v.SetDefault("ELITE_METHOD", "fittest")
	v.SetDefault("SELECT_METHOD", "roulette")
	v.SetDefault("CROSSOVER_METHOD", "uniform")
	v.SetDefault("MUTATION_RATE", 0.0) // 0 enables the adaptive default
	v.SetDefault("SEED", 0)

	v.SetDefault("TARGET_LINEUPS", 1)
	v.SetDefault("DIVERSITY_WEIGHT", 0.2)
	v.SetDefault("MIN_OVERLAP_THRESHOLD", 0.2)
	v.SetDefault("DIVERSITY_METHOD", "jaccard")
	v.SetDefault("MODE", "set_based")
	v.SetDefault("LINEUP_POOL_SIZE", 25000)

	v.SetDefault("SALARY_CAP", 50000)
	v.SetDefault("FLEX_POSITIONS", "RB,WR,TE")

	v.SetDefault("ENABLE_PROFILING", true)

	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode engine config: %w", err)
	}
	if flexStr := v.GetString("FLEX_POSITIONS"); flexStr != "" {
		cfg.FlexPositions = strings.Split(flexStr, ",")
	}
	return &cfg, nil
}

// LoadServiceConfig reads the HTTP/cache/websocket shell's tunables.
func LoadServiceConfig() (*ServiceConfig, error) {
	v := newViper()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("OPTIMIZATION_TIMEOUT", 30)

	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode service config: %w", err)
	}
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		cfg.CorsOrigins = strings.Split(corsStr, ",")
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	return v
}

func (c *ServiceConfig) IsDevelopment() bool { return c.Env == "development" }
func (c *ServiceConfig) IsProduction() bool  { return c.Env == "production" }
