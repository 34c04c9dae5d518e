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

	"github.com/guardeat/sparse-vector/sparse"
)

// batchSize is the number of container operations timed as one sample.
const batchSize = 1024

type payload struct {
	ID     int
	Weight float64
	Label  string
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	elementCount := flag.Int("elements", 10000, "The initial number of elements to push.")
	eraseRatio := flag.Float64("erase-ratio", 0.4, "Fraction of operations that erase instead of push.")
	pooled := flag.Bool("pooled", false, "Route storage through a pooling allocator.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting sparse-vector stress test...")

	// 1. Setup the container
	var vec *sparse.Vector[payload]
	if *pooled {
		vec = sparse.NewWithAllocator[payload](sparse.NewPoolAllocator[payload](), sparse.ChunkSize)
	} else {
		vec = sparse.New[payload]()
	}

	// 2. Populate with initial elements
	log.Printf("Populating container with %d elements...\n", *elementCount)
	handles := make([]int, 0, *elementCount)
	for i := 0; i < *elementCount; i++ {
		handles = append(handles, vec.Push(payload{ID: i, Weight: rand.Float64(), Label: "element"}))
	}
	log.Println("Population complete.")

	// 3. Run the churn loop
	report := &Report{
		Duration:       *duration,
		Elements:       *elementCount,
		EraseRatio:     *eraseRatio,
		Pooled:         *pooled,
		GCPauseMetrics: *gcPauseMetrics,
		BatchTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running churn for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalOps int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			batchStart := time.Now()
			for i := 0; i < batchSize; i++ {
				if len(handles) > 0 && rand.Float64() < *eraseRatio {
					pick := rand.Intn(len(handles))
					vec.Erase(handles[pick])
					handles[pick] = handles[len(handles)-1]
					handles = handles[:len(handles)-1]
				} else {
					handles = append(handles, vec.Push(payload{ID: int(totalOps), Weight: rand.Float64()}))
				}
				totalOps++
			}

			// Walk the live set the way a frame loop would.
			var checksum float64
			for _, item := range vec.All() {
				checksum += item.Weight
			}
			_ = checksum

			report.BatchTime.Samples = append(report.BatchTime.Samples, time.Since(batchStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalOps = totalOps
	report.FinalLive = vec.Len()
	report.FinalCapacity = vec.Cap()
	vec.ShrinkToFit()
	report.ShrunkCapacity = vec.Cap()
	report.BatchTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Churn finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
