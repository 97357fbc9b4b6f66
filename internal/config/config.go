// Package config loads solver and bench settings with viper: built-in defaults, an optional
// TOML file and JOBSHOP_* environment variables, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"jobShop/internal/descent"
	"jobShop/internal/greedy"
	"jobShop/internal/sa"
	"jobShop/internal/ts"
)

const EnvPrefix = "JOBSHOP"

type Config struct {
	Log     LogSection     `mapstructure:"log"`
	Greedy  GreedySection  `mapstructure:"greedy"`
	Descent DescentSection `mapstructure:"descent"`
	Tabu    TabuSection    `mapstructure:"tabu"`
	SA      SASection      `mapstructure:"sa"`
	Bench   BenchSection   `mapstructure:"bench"`
}

type LogSection struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}

type GreedySection struct {
	Priority string `mapstructure:"priority"`
}

type DescentSection struct {
	MaxIterations int `mapstructure:"max_iterations"`
	Workers       int `mapstructure:"workers"`
	CacheSize     int `mapstructure:"cache_size"`
}

type TabuSection struct {
	Iterations       int `mapstructure:"iterations"`
	IterationsPerJob int `mapstructure:"iterations_per_job"`
	Tenure           int `mapstructure:"tenure"`
	TenureRand       int `mapstructure:"tenure_rand"`
	Workers          int `mapstructure:"workers"`
	CacheSize        int `mapstructure:"cache_size"`
}

type SASection struct {
	Iterations       int     `mapstructure:"iterations"`
	IterationsPerJob int     `mapstructure:"iterations_per_job"`
	InitialTemp      float64 `mapstructure:"initial_temp"`
	FinalTemp        float64 `mapstructure:"final_temp"`
	Alpha            float64 `mapstructure:"alpha"`
	Neighborhood     string  `mapstructure:"neighborhood"`
}

type BenchSection struct {
	Suite         string        `mapstructure:"suite"`
	Pairs         string        `mapstructure:"pairs"`
	Solvers       string        `mapstructure:"solvers"`
	Runs          int           `mapstructure:"runs"`
	Seed          int64         `mapstructure:"seed"`
	InstanceSeed  int64         `mapstructure:"instance_seed"`
	PerRunTimeout time.Duration `mapstructure:"per_run_timeout"`
	Out           string        `mapstructure:"out"`
}

// SetDefaults registers every key with the defaults of the solver packages.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	g := greedy.DefaultConfig()
	v.SetDefault("greedy.priority", string(g.Priority))

	d := descent.DefaultConfig()
	v.SetDefault("descent.max_iterations", d.MaxIterations)
	v.SetDefault("descent.workers", d.Workers)
	v.SetDefault("descent.cache_size", d.CacheSize)

	t := ts.DefaultConfig()
	v.SetDefault("tabu.iterations", t.Iterations)
	v.SetDefault("tabu.iterations_per_job", t.IterationsPerJob)
	v.SetDefault("tabu.tenure", t.TabuTenure)
	v.SetDefault("tabu.tenure_rand", t.TabuTenureRand)
	v.SetDefault("tabu.workers", t.Workers)
	v.SetDefault("tabu.cache_size", t.CacheSize)

	s := sa.DefaultConfig()
	v.SetDefault("sa.iterations", s.Iterations)
	v.SetDefault("sa.iterations_per_job", s.IterationsPerJob)
	v.SetDefault("sa.initial_temp", s.InitialTemp)
	v.SetDefault("sa.final_temp", s.FinalTemp)
	v.SetDefault("sa.alpha", s.Alpha)
	v.SetDefault("sa.neighborhood", string(s.Neighborhood))

	v.SetDefault("bench.suite", "")
	v.SetDefault("bench.pairs", "6x6,10x5,10x10,15x10")
	v.SetDefault("bench.solvers", "EST_SPT,EST_LRPT,descent,tabu,sa")
	v.SetDefault("bench.runs", 5)
	v.SetDefault("bench.seed", 1000)
	v.SetDefault("bench.instance_seed", 777)
	v.SetDefault("bench.per_run_timeout", 0)
	v.SetDefault("bench.out", "artifacts/results.csv")
}

// New returns a viper instance with defaults and environment binding. A non-empty path is
// read as TOML.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}
	return v, nil
}

// Load reads the configuration and validates every solver section.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals v; used by the CLI after binding flags.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.GreedyConfig().Validate(); err != nil {
		return errors.Wrap(err, "greedy")
	}
	if err := c.DescentConfig().Validate(); err != nil {
		return errors.Wrap(err, "descent")
	}
	if err := c.TabuConfig().Validate(); err != nil {
		return errors.Wrap(err, "tabu")
	}
	if err := c.SAConfig().Validate(); err != nil {
		return errors.Wrap(err, "sa")
	}
	if c.Bench.Runs <= 0 {
		return errors.Newf("bench: runs must be > 0 (got %d)", c.Bench.Runs)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf("log: verbosity must be >= 0 (got %d)", c.Log.Verbosity)
	}
	return nil
}

func (c *Config) GreedyConfig() greedy.Config {
	p, err := greedy.ParsePriority(c.Greedy.Priority)
	if err != nil {
		// Validate reports the bad value
		return greedy.Config{Priority: greedy.Priority(c.Greedy.Priority)}
	}
	return greedy.Config{Priority: p}
}

func (c *Config) DescentConfig() descent.Config {
	return descent.Config{
		MaxIterations: c.Descent.MaxIterations,
		Workers:       c.Descent.Workers,
		CacheSize:     c.Descent.CacheSize,
	}
}

func (c *Config) TabuConfig() ts.Config {
	return ts.Config{
		Iterations:       c.Tabu.Iterations,
		IterationsPerJob: c.Tabu.IterationsPerJob,
		TabuTenure:       c.Tabu.Tenure,
		TabuTenureRand:   c.Tabu.TenureRand,
		Workers:          c.Tabu.Workers,
		CacheSize:        c.Tabu.CacheSize,
	}
}

func (c *Config) SAConfig() sa.Config {
	return sa.Config{
		Iterations:       c.SA.Iterations,
		IterationsPerJob: c.SA.IterationsPerJob,
		InitialTemp:      c.SA.InitialTemp,
		FinalTemp:        c.SA.FinalTemp,
		Alpha:            c.SA.Alpha,
		Neighborhood:     sa.Neighborhood(c.SA.Neighborhood),
	}
}
