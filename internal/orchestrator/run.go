package orchestrator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hydraresearch/qarrot/internal/config"
	"github.com/hydraresearch/qarrot/internal/textfmt"
)

// Run drives the fold -> [push-T-forward -> partition] fixed-point loop
// that is the optimizer's core algorithm. source is first folded through
// a single adjacent-rotation-reduction pass (inside the chosen
// Optimizer's constructor); then each round pushes every T-gate as far
// forward through the accumulated Clifford tableau as commutation allows
// and partitions the resulting T-gate layer, repeating until a full
// round changes nothing. In bypass mode (cfg.Bypass) this all
// short-circuits: source is copied to w unmodified, which exists to test
// a front end independent of the optimizer itself.
func Run(nQubits int, source OperationSource, w textfmt.Writer, cfg config.RunConfig) error {
	if cfg.Bypass {
		slog.Info("running in bypass mode; writing output unmodified")
		for {
			op, ok, err := source.Next()
			if err != nil {
				return fmt.Errorf("orchestrator: bypass mode: %w", err)
			}
			if !ok {
				break
			}
			if err := w.WriteOperation(nQubits, op); err != nil {
				return fmt.Errorf("orchestrator: bypass mode: %w", err)
			}
		}
		return w.Flush()
	}

	preParse := time.Now()
	slog.Info("reading circuit and running initial reduction")

	var optimizer Optimizer
	var err error
	if cfg.BigFile {
		optimizer, err = NewFileOptimizer(nQubits, source, cfg)
	} else {
		optimizer, err = NewInMemoryOptimizer(nQubits, source, cfg)
	}
	if err != nil {
		return fmt.Errorf("orchestrator: building optimizer: %w", err)
	}

	startTime := time.Now()
	if initial, ok := optimizer.InitialCircuitLength(); ok {
		if post, ok := optimizer.PostReductionLength(); ok {
			slog.Info("initial reduction pass done", "elapsed", startTime.Sub(preParse), "from_operations", initial, "to_operations", post)
		} else {
			slog.Info("initial reduction pass done", "elapsed", startTime.Sub(preParse), "from_operations", initial)
		}
	} else {
		slog.Info("initialized optimizer", "elapsed", startTime.Sub(preParse))
	}

	needsMoreRounds := true
	rounds := 0
	var durationTForward, durationPartition time.Duration

	for needsMoreRounds {
		round := rounds + 1
		slog.Info("beginning round; pushing T gates forward", "round", round)
		needsMoreRounds = false

		t0 := time.Now()
		if _, err := optimizer.PushTForward(); err != nil {
			return fmt.Errorf("orchestrator: pushing T gates forward: %w", err)
		}
		t1 := time.Now()
		durationTForward += t1.Sub(t0)

		if stats, ok := optimizer.LatestStats(); ok {
			slog.Info("pushed T gates forward", "elapsed", t1.Sub(t0), "operations", stats.TotalOperations, "t_gates", stats.TGates, "partitioning", partitionKind(cfg.FullPartitioning))
		}

		changed, err := optimizer.Partition()
		if err != nil {
			return fmt.Errorf("orchestrator: partitioning: %w", err)
		}
		needsMoreRounds = needsMoreRounds || changed
		t2 := time.Now()
		durationPartition += t2.Sub(t1)

		if stats, ok := optimizer.LatestStats(); ok {
			slog.Info("partitioned gates", "elapsed", t2.Sub(t1), "operations", stats.TotalOperations, "t_gates", stats.TGates)
		}

		rounds++
	}

	finalStats, _ := optimizer.LatestStats()
	initial, _ := optimizer.InitialCircuitLength()
	slog.Info("finished optimizing circuit",
		"initial_operations", initial,
		"final_t_gates", finalStats.TGates,
		"rounds", rounds,
		"elapsed", time.Since(startTime),
		"push_t_forward_time", durationTForward,
		"partition_time", durationPartition)

	slog.Info("saving optimized circuit")
	if err := optimizer.WriteToOutput(w); err != nil {
		return fmt.Errorf("orchestrator: writing output: %w", err)
	}
	return nil
}

func partitionKind(full bool) string {
	if full {
		return "full"
	}
	return "fast approximate"
}
