package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wusunjie/kahypar/config"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/partitioner"
)

func TestNewAppliesDefaultsWithNoOptions(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Partition.K)
	assert.Equal(t, objective.Cut, cfg.Partition.Objective)
	assert.Equal(t, partitioner.RecursiveBisection, cfg.Partition.Mode)
}

func TestNewAppliesOptionsOverDefaults(t *testing.T) {
	cfg := config.New(
		config.WithK(8),
		config.WithEpsilon(0.05),
		config.WithObjective(objective.Km1),
		config.WithMode(partitioner.Direct),
		config.WithSeed(42),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Partition.K)
	assert.Equal(t, 0.05, cfg.Partition.Epsilon)
	assert.Equal(t, objective.Km1, cfg.Partition.Objective)
	assert.Equal(t, partitioner.Direct, cfg.Partition.Mode)
	assert.EqualValues(t, 42, cfg.Partition.Seed)
}

func TestWithKPanicsOnNonPositiveValue(t *testing.T) {
	assert.Panics(t, func() { config.WithK(0) })
	assert.Panics(t, func() { config.WithK(-3) })
}

func TestLoadParsesNestedYAMLAndValidates(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
partition:
  k: 4
  epsilon: 0.1
  objective: km1
  mode: direct
  seed: 7
coarsening:
  algorithm: heavy_full
  contraction_limit_multiplier: 200
  max_allowed_weight_multiplier: 2.5
  rating:
    tie_break: random
    rating_function: edge_frequency
initial_partitioning:
  nruns: 5
local_search:
  algorithm: do_nothing
`
	require.NoError(t, afero.WriteFile(fs, "kahypar.yaml", []byte(content), 0o644))

	cfg, err := config.Load(fs, "kahypar.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Partition.K)
	assert.Equal(t, objective.Km1, cfg.Partition.Objective)
	assert.Equal(t, partitioner.Direct, cfg.Partition.Mode)
	assert.Equal(t, "heavy_full", cfg.Coarsening.Algorithm)
	assert.Equal(t, "edge_frequency", cfg.Coarsening.Rating.RatingFunction)
	assert.Equal(t, "do_nothing", cfg.LocalSearch.Algorithm)
}

func TestLoadRejectsUnrecognizedAlgorithmName(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "coarsening:\n  algorithm: not_a_real_algorithm\n"
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte(content), 0o644))

	_, err := config.Load(fs, "bad.yaml")
	require.ErrorIs(t, err, config.ErrConfigInvalid)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := config.Load(fs, "nope.yaml")
	require.ErrorIs(t, err, config.ErrConfigInvalid)
}

func TestValidateReportsKLessThanTwo(t *testing.T) {
	cfg := config.New()
	cfg.Partition.K = 1
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "partition.k")
}

func TestValidateReportsEpsilonOutOfRange(t *testing.T) {
	cfg := config.New()
	cfg.Partition.Epsilon = 1.5
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "partition.epsilon")
}

func TestToPartitionerConfigCarriesTopLevelKnobs(t *testing.T) {
	cfg := config.New(config.WithK(6), config.WithObjective(objective.Soed))
	pc := cfg.ToPartitionerConfig()
	assert.Equal(t, 6, pc.K)
	assert.Equal(t, objective.Soed, pc.Objective)
}
