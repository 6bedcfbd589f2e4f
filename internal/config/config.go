package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/obelisk/internal/common"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	MonteCarlo  MonteCarloConfig  `mapstructure:"montecarlo"`
	Policy      PolicyConfig      `mapstructure:"policy"`
	Loss        LossConfig        `mapstructure:"loss"`
	Scenario    ScenarioConfig    `mapstructure:"scenario"`
	Match       MatchConfig       `mapstructure:"match"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Start StartConfig `mapstructure:"start"`
}

// StartConfig is the resource set every player starts a match with
type StartConfig struct {
	Walls    int `mapstructure:"walls"`
	Soldiers int `mapstructure:"soldiers"`
	Barracks int `mapstructure:"barracks"`
	Obelisks int `mapstructure:"obelisks"`
}

// MonteCarloConfig holds evaluator settings
type MonteCarloConfig struct {
	Samples       int    `mapstructure:"samples"`
	MaxRounds     int    `mapstructure:"max_rounds"`
	RoundOffset   int    `mapstructure:"round_offset"`
	TrialWorkers  int    `mapstructure:"trial_workers"`
	PlayerWorkers int    `mapstructure:"player_workers"` // 0 means one per CPU
	Seed          uint64 `mapstructure:"seed"`           // 0 means random
	PinScope      string `mapstructure:"pin_scope"`
	TopN          int    `mapstructure:"top_n"`
}

// PolicyConfig selects the rollout policy
type PolicyConfig struct {
	Kind           string   `mapstructure:"kind"`
	Genomes        []string `mapstructure:"genomes"`
	GenomeLength   int      `mapstructure:"genome_length"`
	PopulationSize int      `mapstructure:"population_size"`
}

// LossConfig selects the loss function
type LossConfig struct {
	Kind string `mapstructure:"kind"`
}

// ScenarioConfig describes the state to evaluate
type ScenarioConfig struct {
	Turn        int              `mapstructure:"turn"`
	Players     []ScenarioPlayer `mapstructure:"players"`
	Constraints []string         `mapstructure:"constraints"`
	Targets     []int            `mapstructure:"targets"`
}

// ScenarioPlayer is one row of a scenario
type ScenarioPlayer struct {
	Name     string `mapstructure:"name"`
	Walls    int    `mapstructure:"walls"`
	Soldiers int    `mapstructure:"soldiers"`
	Barracks int    `mapstructure:"barracks"`
	Obelisks int    `mapstructure:"obelisks"`
	Defense  int    `mapstructure:"defense"`
}

// MatchConfig holds settings for simulated matches
type MatchConfig struct {
	Players  int `mapstructure:"players"`
	MaxTurns int `mapstructure:"max_turns"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MonitoringConfig holds progress monitoring settings
type MonitoringConfig struct {
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

// DevelopmentConfig holds development-only settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	EventDevMode   bool `mapstructure:"event_dev_mode"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// Pin scopes understood by the evaluator
const (
	PinScopeFirstRound = "first_round"
	PinScopeEveryRound = "every_round"
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.start.walls", 1)
	v.SetDefault("game.start.soldiers", 1)
	v.SetDefault("game.start.barracks", 1)
	v.SetDefault("game.start.obelisks", 1)

	v.SetDefault("montecarlo.samples", 1000)
	v.SetDefault("montecarlo.max_rounds", 46)
	v.SetDefault("montecarlo.round_offset", 4)
	v.SetDefault("montecarlo.trial_workers", 1)
	v.SetDefault("montecarlo.player_workers", 0)
	v.SetDefault("montecarlo.seed", 0)
	v.SetDefault("montecarlo.pin_scope", PinScopeFirstRound)
	v.SetDefault("montecarlo.top_n", 5)

	v.SetDefault("policy.kind", "uniform")
	v.SetDefault("policy.genomes", []string{})
	v.SetDefault("policy.genome_length", 50)
	v.SetDefault("policy.population_size", 16)

	v.SetDefault("loss.kind", "distance")

	v.SetDefault("scenario.turn", 0)
	v.SetDefault("scenario.constraints", []string{})
	v.SetDefault("scenario.targets", []int{})

	v.SetDefault("match.players", 4)
	v.SetDefault("match.max_turns", 50)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("monitoring.progress_interval", "2s")

	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.event_dev_mode", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/obelisk")
	}

	v.SetEnvPrefix("OBELISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && isMissingFile(err):
			// A named file that does not exist yet falls back to defaults.
		case configPath == "" && errors.As(err, &notFound):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the directory of the loaded
// config file (or the working directory) over the current configuration.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil && !isMissingFile(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value any) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

func GetString(key string) string {
	return v.GetString(key)
}

func GetInt(key string) int {
	return v.GetInt(key)
}

func GetBool(key string) bool {
	return v.GetBool(key)
}

func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange runs after the
// new values are decoded and validated; an invalid file keeps the previous values.
func WatchConfig(onChange func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Validate validates the configuration values
func Validate(c *Config) error {
	start := c.Game.Start
	if !common.InRange(start.Walls, 0, 10) || !common.InRange(start.Barracks, 0, 10) {
		return fmt.Errorf("game.start walls and barracks must be between 0 and 10")
	}
	if !common.InRange(start.Obelisks, 1, 9) {
		return fmt.Errorf("game.start.obelisks must be between 1 and 9")
	}
	if !common.FitsUint32(start.Soldiers) {
		return fmt.Errorf("game.start.soldiers must be between 0 and %d", uint32(math.MaxUint32))
	}

	mc := c.MonteCarlo
	if mc.Samples < 1 {
		return fmt.Errorf("montecarlo.samples must be positive")
	}
	if mc.MaxRounds < 1 {
		return fmt.Errorf("montecarlo.max_rounds must be positive")
	}
	if mc.RoundOffset < 0 {
		return fmt.Errorf("montecarlo.round_offset must be non-negative")
	}
	if mc.TrialWorkers < 1 {
		return fmt.Errorf("montecarlo.trial_workers must be positive")
	}
	if mc.PlayerWorkers < 0 {
		return fmt.Errorf("montecarlo.player_workers must be non-negative")
	}
	if mc.PinScope != PinScopeFirstRound && mc.PinScope != PinScopeEveryRound {
		return fmt.Errorf("montecarlo.pin_scope must be %q or %q", PinScopeFirstRound, PinScopeEveryRound)
	}
	if mc.TopN < 0 {
		return fmt.Errorf("montecarlo.top_n must be non-negative")
	}

	switch c.Policy.Kind {
	case "uniform":
	case "genome", "mixture":
		if c.Policy.GenomeLength < 1 && len(c.Policy.Genomes) == 0 {
			return fmt.Errorf("policy.genome_length must be positive when no genomes are given")
		}
		if c.Policy.PopulationSize < 1 && len(c.Policy.Genomes) == 0 {
			return fmt.Errorf("policy.population_size must be positive when no genomes are given")
		}
	default:
		return fmt.Errorf("policy.kind must be uniform, genome or mixture, got %q", c.Policy.Kind)
	}

	if c.Loss.Kind != "distance" {
		return fmt.Errorf("loss.kind must be distance, got %q", c.Loss.Kind)
	}

	for i, p := range c.Scenario.Players {
		if !common.InRange(p.Walls, 0, 10) || !common.InRange(p.Barracks, 0, 10) || !common.InRange(p.Obelisks, 0, 10) {
			return fmt.Errorf("scenario.players[%d] walls, barracks and obelisks must be between 0 and 10", i)
		}
		if !common.FitsUint32(p.Soldiers) {
			return fmt.Errorf("scenario.players[%d].soldiers must be between 0 and %d", i, uint32(math.MaxUint32))
		}
		if !common.InRange(p.Defense, 0, 2) {
			return fmt.Errorf("scenario.players[%d].defense must be between 0 and 2", i)
		}
	}
	for _, target := range c.Scenario.Targets {
		if target < 0 || (len(c.Scenario.Players) > 0 && !common.IsValidIndex(target, len(c.Scenario.Players))) {
			return fmt.Errorf("scenario.targets entry %d is not a player index", target)
		}
	}

	if c.Match.Players < 2 {
		return fmt.Errorf("match.players must be at least 2")
	}
	if c.Match.MaxTurns < 1 {
		return fmt.Errorf("match.max_turns must be positive")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Monitoring.ProgressInterval < 0 {
		return fmt.Errorf("monitoring.progress_interval must be non-negative")
	}

	return nil
}
