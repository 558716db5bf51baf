// Command tablestress drives a random mix of spawn/delete/merge mutations
// against the table core for a fixed duration and reports throughput and
// memory usage. Adapted from the teacher's cmd/ecs-stress, re-pointed at
// direct table.Table mutations (via a world.Registry) instead of
// ecs.Storage/ecs.Scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/archtable/component"
	"github.com/plus3/archtable/entityindex"
	"github.com/plus3/archtable/notify"
	"github.com/plus3/archtable/table"
	"github.com/plus3/archtable/world"
)

const archetypeCount = 6

func buildArchetypes() []table.Type {
	// A small lattice of archetypes sharing a common Position/Velocity base,
	// so merges between them are always valid supersets.
	base := table.Type{1, 2}
	out := make([]table.Type, 0, archetypeCount)
	out = append(out, base)
	for extra := table.EntityId(3); int(extra) < 3+archetypeCount-1; extra++ {
		t := make(table.Type, len(base))
		copy(t, base)
		t = append(t, extra)
		out = append(out, t)
	}
	return out
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	initialRows := flag.Int("rows", 10000, "The initial number of rows to spawn across the archetype mix.")
	flag.Parse()

	log.Println("Starting table stress test...")

	registry := component.NewRegistry()
	registry.Register(1, 8) // position
	registry.Register(2, 8) // velocity
	for extra := table.EntityId(3); int(extra) < 3+archetypeCount-1; extra++ {
		registry.RegisterTag(extra)
	}

	reg := world.New(registry, notify.NewLog(), entityindex.New(*initialRows*2))
	archetypes := buildArchetypes()

	log.Printf("Populating %d rows across %d archetypes...\n", *initialRows, len(archetypes))
	var nextEntity table.EntityId = 1
	for i := 0; i < *initialRows; i++ {
		typ := archetypes[rand.Intn(len(archetypes))]
		if _, _, _, err := reg.Spawn(typ, nextEntity); err != nil {
			log.Fatalf("initial spawn failed: %v", err)
		}
		nextEntity++
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:     *duration,
		InitialRows:  *initialRows,
		ArchetypeMix: len(archetypes),
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			batchStart := time.Now()
			runBatch(reg, archetypes, &nextEntity, report)
			report.BatchTime.Samples = append(report.BatchTime.Samples, time.Since(batchStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.BatchTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// runBatch performs one batch of 100 random mutations: spawns, swap-remove
// deletes, and occasional merges between adjacent archetypes.
func runBatch(reg *world.Registry, archetypes []table.Type, nextEntity *table.EntityId, report *Report) {
	const batchSize = 100
	for i := 0; i < batchSize; i++ {
		switch rand.Intn(10) {
		case 0, 1:
			if len(archetypes) > 1 {
				a, b := rand.Intn(len(archetypes)), rand.Intn(len(archetypes))
				if a != b {
					if a < b {
						a, b = b, a
					}
					_ = reg.Merge(archetypes[a], archetypes[b])
					report.TotalMerges++
				}
			}
		case 2, 3, 4:
			entity := *nextEntity - table.EntityId(rand.Intn(200)+1)
			if entity >= 1 {
				if err := reg.Delete(entity); err == nil {
					report.TotalDeletes++
				}
			}
		default:
			typ := archetypes[rand.Intn(len(archetypes))]
			if _, _, _, err := reg.Spawn(typ, *nextEntity); err == nil {
				*nextEntity++
				report.TotalSpawns++
			}
		}
	}
}
