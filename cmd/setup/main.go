// Command setup writes a fresh seed snapshot to disk, optionally with a
// generated demo trading history. Useful for resetting a development
// environment without starting the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/seed"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	path := flag.String("out", "data/snapshot.json", "snapshot file to write")
	demo := flag.Bool("demo", false, "include generated demo transactions")
	demoCount := flag.Int("demo-count", 60, "number of demo transactions")
	demoDays := flag.Int("demo-days", 90, "how many past days the demo history spans")
	demoSeed := flag.Int64("demo-seed", 0, "random seed for demo data (0 = time-based)")
	flag.Parse()

	now := time.Now()
	doc := seed.Document(now)

	if *demo {
		src := *demoSeed
		if src == 0 {
			src = now.UnixNano()
		}
		rnd := rand.New(rand.NewSource(src))
		doc.SalesHistory = seed.DemoTransactions(rnd, now, *demoDays, *demoCount)
	}

	if err := snapshot.Save(*path, doc); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	fmt.Printf("Seed snapshot written to %s (%d materials, %d recipes, %d transactions)\n",
		*path, len(doc.Inventory), len(doc.Recipes), len(doc.SalesHistory))
}
