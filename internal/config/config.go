package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/raidkit/safezone/pkg/safezone"
)

// ConfigName is the file Load looks for inside the config directory.
const ConfigName = "safezone.cfg.json"

// EngineConfig holds the calculator tuning knobs.
type EngineConfig struct {
	PoissonAttempts    int     `json:"poissonAttempts" mapstructure:"poissonAttempts"`
	MaxCandidates      int     `json:"maxCandidates" mapstructure:"maxCandidates"`
	MinDistanceFloor   float64 `json:"minDistanceFloor" mapstructure:"minDistanceFloor"`
	DefaultMinDistance float64 `json:"defaultMinDistance" mapstructure:"defaultMinDistance"`
	SeedRadiusFraction float64 `json:"seedRadiusFraction" mapstructure:"seedRadiusFraction"`
	DirectionSamples   int     `json:"directionSamples" mapstructure:"directionSamples"`
	GridResolution     float64 `json:"gridResolution" mapstructure:"gridResolution"`
	RenderSegments     int     `json:"renderSegments" mapstructure:"renderSegments"`
}

// Tuning converts the engine section into calculator tuning.
func (e EngineConfig) Tuning() safezone.Tuning {
	return safezone.Tuning{
		PoissonAttempts:    e.PoissonAttempts,
		MaxCandidates:      e.MaxCandidates,
		MinDistanceFloor:   e.MinDistanceFloor,
		DefaultMinDistance: e.DefaultMinDistance,
		SeedRadiusFraction: e.SeedRadiusFraction,
	}
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout   time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `json:"insecure" mapstructure:"insecure"`
}

// SetDefaults registers every default value. Load calls it; tools that run
// without a config file can call it directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./safezonelogs")
	viper.SetDefault("logBackend", "slog")

	viper.SetDefault("engine.poissonAttempts", safezone.DefaultPoissonAttempts)
	viper.SetDefault("engine.maxCandidates", safezone.DefaultMaxCandidates)
	viper.SetDefault("engine.minDistanceFloor", safezone.DefaultMinDistanceFloor)
	viper.SetDefault("engine.defaultMinDistance", safezone.DefaultMinDistance)
	viper.SetDefault("engine.seedRadiusFraction", safezone.DefaultSeedRadiusFraction)
	viper.SetDefault("engine.directionSamples", safezone.DefaultDirectionSamples)
	viper.SetDefault("engine.gridResolution", safezone.DefaultGridResolution)
	viper.SetDefault("engine.renderSegments", 64)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "safezone")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "10s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetEngineConfig returns the engine section.
func GetEngineConfig() EngineConfig {
	return EngineConfig{
		PoissonAttempts:    GetInt("engine.poissonAttempts"),
		MaxCandidates:      GetInt("engine.maxCandidates"),
		MinDistanceFloor:   GetFloat64("engine.minDistanceFloor"),
		DefaultMinDistance: GetFloat64("engine.defaultMinDistance"),
		SeedRadiusFraction: GetFloat64("engine.seedRadiusFraction"),
		DirectionSamples:   GetInt("engine.directionSamples"),
		GridResolution:     GetFloat64("engine.gridResolution"),
		RenderSegments:     GetInt("engine.renderSegments"),
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        GetBool("otel.enabled"),
		ServiceName:    GetString("otel.serviceName"),
		BatchTimeout:   GetDuration("otel.batchTimeout"),
		MetricInterval: GetDuration("otel.metricInterval"),
		Endpoint:       GetString("otel.endpoint"),
		Insecure:       GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a duration config value.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
