package main

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/TheTesla/yices2/typeexpr"
	"github.com/TheTesla/yices2/typetable"
)

func newCmd_Eval() *cli.Command {
	return &cli.Command{
		Name:        "eval",
		Usage:       "Build type terms and report kind, cardinality and flags.",
		Description: "Build the given type terms (or terms read from --file) in a fresh table and print one report line per term. With two or more terms, --join/--meet/--subtype query the first two.",
		ArgsUsage:   "'(bv 8)' '(tuple int real)' ...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Read type terms from this file instead of the arguments.",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print machine-readable JSON instead of text.",
			},
			&cli.BoolFlag{
				Name:  "join",
				Usage: "Also print the join of the first two terms.",
			},
			&cli.BoolFlag{
				Name:  "meet",
				Usage: "Also print the meet of the first two terms.",
			},
			&cli.BoolFlag{
				Name:  "subtype",
				Usage: "Also print whether the first term is a subtype of the second.",
			},
		},
		Action: func(c *cli.Context) error {
			src := strings.Join(c.Args().Slice(), " ")
			if path := c.String("file"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				src = string(data)
			}
			if strings.TrimSpace(src) == "" {
				return fmt.Errorf("no type terms given")
			}

			tbl := typetable.NewTable(0)
			defer tbl.Close()

			terms, err := typeexpr.ParseAll(tbl, src)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return printEvalJSON(c, tbl, terms)
			}
			for _, tau := range terms {
				fmt.Printf("#%d\t%s\tkind=%s card=%s flags=%s\n",
					tau,
					typeexpr.Print(tbl, tau),
					tbl.KindOf(tau),
					formatCard(tbl.CardOf(tau)),
					formatFlags(tbl, tau),
				)
			}
			if len(terms) >= 2 {
				a, b := terms[0], terms[1]
				if c.Bool("join") {
					fmt.Printf("join\t%s\n", formatLatticeResult(tbl, tbl.Join(a, b)))
				}
				if c.Bool("meet") {
					fmt.Printf("meet\t%s\n", formatLatticeResult(tbl, tbl.Meet(a, b)))
				}
				if c.Bool("subtype") {
					fmt.Printf("subtype\t%v\n", tbl.IsSubtype(a, b))
				}
			}
			return nil
		},
	}
}

func printEvalJSON(c *cli.Context, tbl *typetable.Table, terms []typetable.Type) error {
	type queryResult struct {
		Join    *string `json:"join,omitempty"`
		Meet    *string `json:"meet,omitempty"`
		Subtype *bool   `json:"subtype,omitempty"`
	}
	out := struct {
		Terms []typetable.TypeInfo `json:"terms"`
		Query queryResult          `json:"query"`
	}{}
	snapshot := tbl.Snapshot()
	byID := make(map[typetable.Type]typetable.TypeInfo, len(snapshot))
	for _, info := range snapshot {
		byID[info.ID] = info
	}
	for _, tau := range terms {
		out.Terms = append(out.Terms, byID[tau])
	}
	if len(terms) >= 2 {
		a, b := terms[0], terms[1]
		if c.Bool("join") {
			s := formatLatticeResult(tbl, tbl.Join(a, b))
			out.Query.Join = &s
		}
		if c.Bool("meet") {
			s := formatLatticeResult(tbl, tbl.Meet(a, b))
			out.Query.Meet = &s
		}
		if c.Bool("subtype") {
			v := tbl.IsSubtype(a, b)
			out.Query.Subtype = &v
		}
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatLatticeResult(tbl *typetable.Table, tau typetable.Type) string {
	if tau == typetable.NullType {
		return "none"
	}
	return typeexpr.Print(tbl, tau)
}

func formatCard(card uint32) string {
	if card == typetable.CardInfinite {
		return "inf"
	}
	return fmt.Sprintf("%d", card)
}

func formatFlags(tbl *typetable.Table, tau typetable.Type) string {
	var parts []string
	if tbl.IsFinite(tau) {
		parts = append(parts, "finite")
	}
	if tbl.IsUnit(tau) {
		parts = append(parts, "unit")
	}
	if tbl.IsSmall(tau) {
		parts = append(parts, "small")
	}
	if tbl.IsMaximal(tau) {
		parts = append(parts, "max")
	}
	if tbl.IsMinimal(tau) {
		parts = append(parts, "min")
	}
	if len(parts) == 0 {
		return "infinite"
	}
	return strings.Join(parts, ",")
}
