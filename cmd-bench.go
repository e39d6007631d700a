package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/TheTesla/yices2/typetable"
)

func newCmd_Bench() *cli.Command {
	return &cli.Command{
		Name:        "bench",
		Usage:       "Populate a table with random types, collect garbage, print stats.",
		Description: "Build count pseudo-random types (seeded), name every Nth one so it survives collection, run GC, and report table statistics. --dump writes the surviving table as JSON (gzipped for .gz paths).",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of random types to build.",
				Value: 100_000,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for the type generator.",
				Value: 42,
			},
			&cli.IntFlag{
				Name:  "name-every",
				Usage: "Name every Nth created type (0 names none).",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  "dump",
				Usage: "Write the post-GC table as JSON to this path.",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Dump the first few surviving descriptors to stderr.",
			},
		},
		Action: func(c *cli.Context) error {
			count := c.Int("count")
			if count <= 0 {
				return fmt.Errorf("invalid count: %d", count)
			}

			tbl := typetable.NewTable(uint32(count))
			defer tbl.Close()
			rng := rand.New(rand.NewSource(c.Int64("seed")))

			bar := progressbar.Default(int64(count), "building types")
			start := time.Now()
			pool := []typetable.Type{typetable.BoolType, typetable.IntType, typetable.RealType}
			nameEvery := c.Int("name-every")
			for i := 0; i < count; i++ {
				tau := randomType(tbl, rng, pool)
				pool = append(pool, tau)
				if nameEvery > 0 && i%nameEvery == 0 {
					tbl.SetName(tau, fmt.Sprintf("t%d", i))
				}
				_ = bar.Add(1)
			}
			buildTime := time.Since(start)
			_ = bar.Finish()

			liveBefore := tbl.Live()
			start = time.Now()
			tbl.GC()
			gcTime := time.Since(start)

			fmt.Printf("slots:     %s\n", humanize.Comma(int64(tbl.NumTypes())))
			fmt.Printf("built in:  %s\n", buildTime)
			fmt.Printf("live:      %s (was %s)\n",
				humanize.Comma(int64(tbl.Live())), humanize.Comma(int64(liveBefore)))
			fmt.Printf("reclaimed: %s in %s\n",
				humanize.Comma(int64(liveBefore-tbl.Live())), gcTime)

			if c.Bool("debug") {
				snapshot := tbl.Snapshot()
				if len(snapshot) > 10 {
					snapshot = snapshot[:10]
				}
				spew.Fdump(os.Stderr, snapshot)
			}
			if path := c.String("dump"); path != "" {
				if err := dumpTable(tbl, path); err != nil {
					return fmt.Errorf("failed to dump table: %w", err)
				}
				fmt.Printf("dumped:    %s\n", path)
			}
			return nil
		},
	}
}

// randomType draws one type over the ids already in pool. The mix leans
// toward compounds so the table exercises hash-consing and GC depth.
func randomType(tbl *typetable.Table, rng *rand.Rand, pool []typetable.Type) typetable.Type {
	pick := func() typetable.Type {
		return pool[rng.Intn(len(pool))]
	}
	switch rng.Intn(10) {
	case 0:
		return tbl.BitvectorType(uint32(1 + rng.Intn(128)))
	case 1:
		return tbl.NewScalarType(uint32(1 + rng.Intn(16)))
	case 2:
		return tbl.NewUninterpretedType()
	case 3, 4, 5:
		elems := make([]typetable.Type, 1+rng.Intn(4))
		for i := range elems {
			elems[i] = pick()
		}
		return tbl.TupleType(elems...)
	default:
		domain := make([]typetable.Type, 1+rng.Intn(3))
		for i := range domain {
			domain[i] = pick()
		}
		return tbl.FunctionType(domain, pick())
	}
}

func dumpTable(tbl *typetable.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tbl.Snapshot())
}
