package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/cyberguard-ng/cyberguard/internal/classifier"
	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

func main() {
	rulesPath := flag.String("rules", "", "path to ruleset JSON (empty uses the embedded bundle)")
	n := flag.Int("n", 10000, "number of iterations")
	kind := flag.String("kind", "sms", "input kind: ussd or sms")
	input := flag.String("input", "Congratulations! You won $1,000,000 lottery! Call now to claim.", "input to classify")
	flag.Parse()

	var (
		db  *ruledb.Database
		err error
	)
	if *rulesPath == "" {
		db, err = ruledb.Default()
	} else {
		db, err = ruledb.Load(*rulesPath)
	}
	if err != nil {
		log.Fatalf("load ruleset: %v", err)
	}
	store := ruledb.NewStore(*rulesPath, db)

	var classify func(string) classifier.Verdict
	switch *kind {
	case "ussd":
		classify = classifier.NewUSSD(store).Classify
	case "sms":
		classify = classifier.NewSMS(store).Classify
	default:
		log.Fatalf("kind must be ussd or sms, got %q", *kind)
	}

	// Warmup
	for i := 0; i < 5; i++ {
		classify(*input)
	}

	if *n <= 0 {
		*n = 1
	}

	durations := make([]time.Duration, 0, *n)
	for i := 0; i < *n; i++ {
		start := time.Now()
		classify(*input)
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	avg := float64(total.Microseconds()) / float64(len(durations))
	p50 := float64(durations[len(durations)/2].Microseconds())
	p95 := float64(durations[int(float64(len(durations))*0.95)].Microseconds())

	fmt.Printf("bench: kind=%s n=%d avg_us=%.2f p50_us=%.2f p95_us=%.2f rules_version=%s\n",
		*kind,
		len(durations),
		avg,
		p50,
		p95,
		db.Version,
	)
}
