// Command aggregatorctl is a demonstration driver for the aggregator state
// machine: it seeds a shared, in-memory resolver fixture with one V1 and one
// V2 aggregator, then runs several independent "transactions" concurrently,
// each owning its own AggregatorData, against that shared Resolver. It
// prints the change set each transaction would have committed.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/kaspanet/kaspad-aggregator/aggregator"
	"github.com/kaspanet/kaspad-aggregator/aggregatorfixture"
	"github.com/kaspanet/kaspad-aggregator/logger"
	"github.com/kaspanet/kaspad-aggregator/logs"
	"golang.org/x/crypto/blake2b"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig()
	if err != nil {
		return err
	}
	logger.SetLogLevels(cfg.LogLevel)
	log := logger.AggregatorLogger()

	maxValue := aggregator.NewUint128FromUint64(cfg.MaxValue)
	startValue := aggregator.NewUint128FromUint64(cfg.StartValue)

	v1Key := stateKeyFromName(cfg.AggregatorV1)
	v2ID := aggregator.AggregatorID(1)

	fixture := aggregatorfixture.New()
	fixture.SeedV1(v1Key, &startValue)
	fixture.SeedV2(v2ID, startValue)

	log.Infof("seeded V1 aggregator %s and V2 aggregator %d at %s, max_value %s",
		v1Key, v2ID, startValue, maxValue)

	var j *journal
	if cfg.DBFile != "" {
		j, err = openJournal(cfg.DBFile)
		if err != nil {
			return err
		}
		defer j.Close()
	}

	results := make([]string, cfg.Workers)
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for worker := 0; worker < cfg.Workers; worker++ {
		worker := worker
		go func() {
			defer wg.Done()
			results[worker] = runWorker(log, fixture, worker, aggregator.V1ID(v1Key), aggregator.V2ID(v2ID), maxValue)
		}()
	}
	wg.Wait()

	for worker, result := range results {
		fmt.Printf("=== worker %d ===\n%s\n", worker, result)
		if j != nil {
			if err := j.Record(worker, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// runWorker simulates one transaction: it touches both the V1 and V2 demo
// aggregators with a worker-dependent sequence of try_add/try_sub calls,
// reads the most recent value of each, and drains the resulting change set.
func runWorker(
	log logs.Logger,
	resolver aggregator.Resolver,
	worker int,
	v1ID, v2ID aggregator.AggregatorVersionedID,
	maxValue aggregator.Uint128,
) string {
	data := aggregator.NewAggregatorData(uint64(worker) * 1000)

	v1 := data.GetAggregator(v1ID, maxValue)
	v2 := data.GetAggregator(v2ID, maxValue)

	step := aggregator.NewUint128FromUint64(uint64(worker) + 1)
	if ok, err := v1.TryAdd(resolver, step); err != nil {
		return errorString(err)
	} else if !ok {
		log.Infof("worker %d: try_add on v1 rejected locally (would overflow)", worker)
	}
	if ok, err := v2.TrySub(resolver, step); err != nil {
		return errorString(err)
	} else if !ok {
		log.Infof("worker %d: try_sub on v2 rejected locally (would underflow)", worker)
	}

	v1Value, err := v1.ReadMostRecent(resolver)
	if err != nil {
		return errorString(err)
	}
	v2Value, err := v2.ReadMostRecent(resolver)
	if err != nil {
		return errorString(err)
	}

	cs := data.Into()
	return fmt.Sprintf("v1=%s v2=%s\n%s", v1Value, v2Value, cs)
}

func errorString(err error) string {
	wrapped := aggregator.WrapForVM(err)
	if aggregator.IsSpeculativeInvalidation(err) {
		return fmt.Sprintf("retry (speculative invalidation): %s", wrapped)
	}
	return fmt.Sprintf("abort (invariant violation): %s", wrapped)
}

// stateKeyFromName derives a deterministic 32-byte StateKey from a
// human-readable name, so the same --key flag always addresses the same
// demo aggregator across runs.
func stateKeyFromName(name string) aggregator.StateKey {
	digest := blake2b.Sum256([]byte(name))
	var key aggregator.StateKey
	copy(key[:], digest[:])
	return key
}
