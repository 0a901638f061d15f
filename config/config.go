// Package config resolves partitioning configuration from a YAML file
// layered with functional-option overrides, the way builder.BuilderOption
// resolves a builderConfig: option constructors validate and panic on
// meaningless input, while Validate surfaces data-dependent problems as
// an error for the caller to handle.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/partitioner"
)

// ErrConfigInvalid is returned by Validate for any out-of-range or
// unrecognized option value.
var ErrConfigInvalid = errors.New("config: invalid configuration")

// Config holds every option recognized by the partitioner, CLI, and I/O
// layers. The nested sections mirror the dotted option names from the
// external YAML schema (partition.k, coarsening.algorithm, ...); each
// section is its own YAML mapping.
type Config struct {
	Partition           partitionSection           `yaml:"partition"`
	Coarsening          coarseningSection          `yaml:"coarsening"`
	InitialPartitioning initialPartitioningSection `yaml:"initial_partitioning"`
	LocalSearch         localSearchSection         `yaml:"local_search"`
}

type partitionSection struct {
	K         int              `yaml:"k"`
	Epsilon   float64          `yaml:"epsilon"`
	Objective objective.Kind   `yaml:"objective"`
	Mode      partitioner.Mode `yaml:"mode"`
	Seed      int64            `yaml:"seed"`
}

type coarseningSection struct {
	Algorithm                  string        `yaml:"algorithm"`
	ContractionLimitMultiplier float64       `yaml:"contraction_limit_multiplier"`
	MaxAllowedWeightMultiplier float64       `yaml:"max_allowed_weight_multiplier"`
	Rating                     ratingSection `yaml:"rating"`
}

type ratingSection struct {
	TieBreak       string `yaml:"tie_break"`
	RatingFunction string `yaml:"rating_function"`
}

type initialPartitioningSection struct {
	NRuns int `yaml:"nruns"`
}

type localSearchSection struct {
	Algorithm string `yaml:"algorithm"`
}

// defaults returns a Config with every field set to a sane, always-valid
// starting point; Load/New build on top of this rather than a zero value.
func defaults() Config {
	return Config{
		Partition: partitionSection{
			K:         2,
			Epsilon:   0.03,
			Objective: objective.Cut,
			Mode:      partitioner.RecursiveBisection,
			Seed:      0,
		},
		Coarsening: coarseningSection{
			Algorithm:                  "heavy_lazy",
			ContractionLimitMultiplier: 160,
			MaxAllowedWeightMultiplier: 3.25,
			Rating: ratingSection{
				TieBreak:       "first",
				RatingFunction: "heavy_edge",
			},
		},
		InitialPartitioning: initialPartitioningSection{
			NRuns: 20,
		},
		LocalSearch: localSearchSection{
			Algorithm: "fm",
		},
	}
}

// Option customizes a Config by mutating it in place. Like
// builder.BuilderOption, option constructors validate and panic on
// programmer error (nil callbacks, structurally meaningless values);
// data-dependent problems (k<2 from a config file, say) are instead
// caught later by Validate.
type Option func(*Config)

// New resolves a Config from defaults() plus opts applied in order.
func New(opts ...Option) *Config {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithK sets partition.k. Panics if k<=0: a non-positive block count is
// structurally meaningless, not merely out of the valid range.
func WithK(k int) Option {
	if k <= 0 {
		panic("config: WithK(k<=0)")
	}
	return func(c *Config) { c.Partition.K = k }
}

// WithEpsilon sets partition.epsilon.
func WithEpsilon(eps float64) Option {
	return func(c *Config) { c.Partition.Epsilon = eps }
}

// WithObjective sets partition.objective.
func WithObjective(kind objective.Kind) Option {
	return func(c *Config) { c.Partition.Objective = kind }
}

// WithMode sets partition.mode.
func WithMode(mode partitioner.Mode) Option {
	return func(c *Config) { c.Partition.Mode = mode }
}

// WithSeed sets partition.seed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Partition.Seed = seed }
}

// Load reads a YAML file from fs at path, layers it over defaults(),
// and validates the result.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrConfigInvalid, path, err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %v", ErrConfigInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validObjectives = map[objective.Kind]bool{
	objective.Cut:  true,
	objective.Km1:  true,
	objective.Soed: true,
}

var validModes = map[partitioner.Mode]bool{
	partitioner.Direct:             true,
	partitioner.RecursiveBisection: true,
}

var validCoarseningAlgorithms = map[string]bool{
	"heavy_lazy": true,
	"heavy_full": true,
	"ml_style":   true,
}

var validRatingFunctions = map[string]bool{
	"heavy_edge":      true,
	"edge_frequency":  true,
	"community_aware": true,
}

var validTieBreaks = map[string]bool{
	"first":  true,
	"last":   true,
	"random": true,
}

var validLocalSearchAlgorithms = map[string]bool{
	"fm":         true,
	"do_nothing": true,
}

// Validate reports every data-dependent problem with c as a single
// wrapped ErrConfigInvalid.
func (c *Config) Validate() error {
	var problems []string
	if c.Partition.K < 2 {
		problems = append(problems, fmt.Sprintf("partition.k must be >=2, got %d", c.Partition.K))
	}
	if c.Partition.Epsilon <= 0 || c.Partition.Epsilon >= 1 {
		problems = append(problems, fmt.Sprintf("partition.epsilon must be in (0,1), got %v", c.Partition.Epsilon))
	}
	if !validObjectives[c.Partition.Objective] {
		problems = append(problems, fmt.Sprintf("partition.objective %q not recognized", c.Partition.Objective))
	}
	if !validModes[c.Partition.Mode] {
		problems = append(problems, fmt.Sprintf("partition.mode %q not recognized", c.Partition.Mode))
	}
	if !validCoarseningAlgorithms[c.Coarsening.Algorithm] {
		problems = append(problems, fmt.Sprintf("coarsening.algorithm %q not recognized", c.Coarsening.Algorithm))
	}
	if !validRatingFunctions[c.Coarsening.Rating.RatingFunction] {
		problems = append(problems, fmt.Sprintf("coarsening.rating.rating_function %q not recognized", c.Coarsening.Rating.RatingFunction))
	}
	if !validTieBreaks[c.Coarsening.Rating.TieBreak] {
		problems = append(problems, fmt.Sprintf("coarsening.rating.tie_break %q not recognized", c.Coarsening.Rating.TieBreak))
	}
	if !validLocalSearchAlgorithms[c.LocalSearch.Algorithm] {
		problems = append(problems, fmt.Sprintf("local_search.algorithm %q not recognized", c.LocalSearch.Algorithm))
	}
	if c.Coarsening.ContractionLimitMultiplier <= 0 {
		problems = append(problems, "coarsening.contraction_limit_multiplier must be >0")
	}
	if c.Coarsening.MaxAllowedWeightMultiplier <= 0 {
		problems = append(problems, "coarsening.max_allowed_weight_multiplier must be >0")
	}
	if c.InitialPartitioning.NRuns < 1 {
		problems = append(problems, "initial_partitioning.nruns must be >=1")
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrConfigInvalid, problems)
}

// ToPartitionerConfig builds a multilevel/recursive-bisection driver
// config's top-level knobs from c. Component wiring (RNG, coarsening
// config, initial partitioner, refiner) lives in cmd/kahypar, which
// alone imports both config and the algorithm packages.
func (c *Config) ToPartitionerConfig() partitioner.Config {
	return partitioner.Config{
		K:         c.Partition.K,
		Epsilon:   c.Partition.Epsilon,
		Objective: c.Partition.Objective,
		Mode:      c.Partition.Mode,
	}
}
