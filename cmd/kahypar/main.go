// Command kahypar reads a hypergraph and a YAML configuration file,
// runs the multilevel/recursive-bisection partitioner, and writes the
// resulting block assignment.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wusunjie/kahypar/community"
	"github.com/wusunjie/kahypar/config"
	"github.com/wusunjie/kahypar/hgio"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/initpart"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/partitioner"
	"github.com/wusunjie/kahypar/prng"
	"github.com/wusunjie/kahypar/rating"
	"github.com/wusunjie/kahypar/refinement"
)

// exit codes per the documented CLI contract: 0 on success, distinct
// non-zero codes for malformed input vs. invalid configuration so
// wrapper scripts can tell the two apart.
const (
	exitOK            = 0
	exitInputFormat   = 2
	exitConfigInvalid = 3
	exitInfeasible    = 4
	exitInternal      = 1
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	app := &cli.App{
		Name:  "kahypar",
		Usage: "multilevel hypergraph partitioner",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML configuration"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path to hMetis hypergraph file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "path to write the block assignment"},
			&cli.StringFlag{Name: "log-file", Value: "kahypar.log", Usage: "rotating log file path"},
		},
	}

	code := exitOK
	app.Action = func(c *cli.Context) error {
		code = runPartition(c)
		return nil
	}
	if err := app.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}
	return code
}

func runPartition(c *cli.Context) int {
	logger, sync := newLogger(c.String("log-file"))
	defer sync()
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	fs := afero.NewOsFs()

	cfg := config.New()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(fs, path)
		if err != nil {
			logger.Error("invalid configuration", zap.Error(err))
			return exitConfigInvalid
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return exitConfigInvalid
	}

	h, err := hgio.ReadHypergraph(fs, c.String("input"))
	if err != nil {
		logger.Error("malformed hypergraph input", zap.Error(err))
		return exitInputFormat
	}
	logger.Info("loaded hypergraph",
		zap.Int("vertices", h.NumVertices()),
		zap.Int("hyperedges", h.NumEdges()))

	pcfg := buildPartitionerConfig(cfg, h)

	ctx := context.Background()
	if err := partitioner.Partition(ctx, h, pcfg); err != nil {
		if errors.Is(err, partitioner.ErrInfeasible) {
			logger.Error("no feasible partition under given epsilon", zap.Error(err))
			return exitInfeasible
		}
		logger.Error("partitioning failed", zap.Error(err))
		return exitInternal
	}

	cut := objective.Evaluate(h, cfg.Partition.Objective)
	logger.Info("partition complete", zap.Int64(string(cfg.Partition.Objective), cut))

	if err := hgio.WriteAssignment(fs, c.String("output"), blockAssignment(h)); err != nil {
		logger.Error("writing assignment failed", zap.Error(err))
		return exitInternal
	}
	return exitOK
}

// blockAssignment reads off h's block id for every vertex in id order,
// the shape hgio.WriteAssignment expects.
func blockAssignment(h *hgraph.Hypergraph) []hgraph.BlockId {
	n := h.MaxVertexID()
	blocks := make([]hgraph.BlockId, n)
	for v := 0; v < n; v++ {
		blocks[v] = h.Block(hgraph.VertexId(v))
	}
	return blocks
}

// communityStream tags the PRNG substream reserved for label-propagation
// community detection, kept independent of coarsening/initial-partitioning
// streams the same way multilevel.coarsenStream/initStream are.
const communityStream uint64 = 3

// communityMaxIterations bounds asynchronous label propagation; detection
// already exits early once a full round changes no label.
const communityMaxIterations = 20

// buildPartitionerConfig wires the remaining algorithmic components
// (RNG, coarsening tunables, initial partitioner, refiner) on top of
// the portable knobs config.Config.ToPartitionerConfig already carries.
// This is the one place in the module that imports both config and the
// algorithm packages, keeping the core free of the ambient stack. h is
// only needed to run community detection up front when configured.
func buildPartitionerConfig(cfg *config.Config, h *hgraph.Hypergraph) partitioner.Config {
	pcfg := cfg.ToPartitionerConfig()
	pcfg.RNG = prng.FromSeed(cfg.Partition.Seed)
	pcfg.InitialRuns = cfg.InitialPartitioning.NRuns
	pcfg.InitialPartitioner = initpart.GreedyRegionGrowing{}
	pcfg.CoarseningConfig.ContractionLimitMultiplier = cfg.Coarsening.ContractionLimitMultiplier
	pcfg.CoarseningConfig.MaxAllowedWeightMultiplier = cfg.Coarsening.MaxAllowedWeightMultiplier
	pcfg.CoarseningConfig.RatingFunc = ratingFuncFor(cfg.Coarsening.Rating.RatingFunction, h, pcfg.RNG)
	pcfg.CoarseningConfig.TieBreak = tieBreakFor(cfg.Coarsening.Rating.TieBreak)

	if cfg.LocalSearch.Algorithm == "do_nothing" {
		pcfg.Refiner = refinement.DoNothing{}
	} else if pcfg.K > 2 {
		pcfg.Refiner = refinement.KWayFM{}
	} else {
		pcfg.Refiner = refinement.TwoWayFM{}
	}
	return pcfg
}

// ratingFuncFor resolves a configured rating-function name to its
// implementation; unrecognized names (already rejected by
// config.Validate before this point is ever reached) fall back to the
// default heavy-edge rating. edge_frequency builds its pin-size
// occurrence table from h once, up front, so it actually discounts
// common net sizes rather than behaving as a heavy-edge alias.
// community_aware runs label-propagation detection on h once, up front,
// and wraps heavy-edge rating so coarsening only contracts pairs sharing
// a detected community.
func ratingFuncFor(name string, h *hgraph.Hypergraph, rng *rand.Rand) rating.Func {
	switch name {
	case "edge_frequency":
		return rating.EdgeFrequency{SizeFrequency: pinSizeFrequency(h)}
	case "community_aware":
		labels := community.Detect(h, communityMaxIterations, prng.Derive(rng, communityStream))
		return rating.CommunityAware{
			Base:      rating.HeavyEdge{},
			Community: labels.Of,
		}
	default:
		return rating.HeavyEdge{}
	}
}

// pinSizeFrequency counts, for each pin count, how many active
// hyperedges of h have that many pins, giving rating.EdgeFrequency
// a real basis for discounting near-ubiquitous net sizes instead of
// treating every edge as equally rare.
func pinSizeFrequency(h *hgraph.Hypergraph) map[int]int64 {
	freq := make(map[int]int64)
	for e := 0; e < h.MaxEdgeID(); e++ {
		eid := hgraph.HyperedgeId(e)
		if !h.EdgeActive(eid) {
			continue
		}
		freq[len(h.Pins(eid))]++
	}
	return freq
}

// tieBreakFor resolves a configured tie-break name to its policy.
func tieBreakFor(name string) rating.TieBreak {
	switch name {
	case "last":
		return rating.LastRatingWins{}
	case "random":
		return rating.RandomRatingWins{}
	default:
		return rating.FirstRatingWins{}
	}
}

// newLogger builds a zap logger that writes structured JSON to a
// lumberjack-rotated file sink, so long-running batch partitioning jobs
// don't grow an unbounded log file.
func newLogger(path string) (*zap.Logger, func()) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), zap.InfoLevel)
	logger := zap.New(core)
	return logger, func() { _ = logger.Sync() }
}
