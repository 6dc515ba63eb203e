// parttool decodes an esp-idf partition table image and prints its
// partitions.
//
// Usage:
//
//	parttool [flags] <partitions.bin>
//
// Flags:
//
//	--output text|csv|json|yaml|fb   Output format (default: config/text)
//	--output-file <path>             Write to a file instead of stdout
//	--config <path>                  Override the default config file
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/halide-systems/nvsinspect/config"
	"github.com/halide-systems/nvsinspect/parttable"
	"github.com/halide-systems/nvsinspect/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "parttool: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("parttool", flag.ContinueOnError)
	flagSet.SetOutput(os.Stderr)

	outputFormat := flagSet.String("output", "", "output format: text, csv, json, yaml, fb")
	outputFile := flagSet.String("output-file", "", "write output to this file instead of stdout")
	configPath := flagSet.String("config", "", "path to a HuJSON config file")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return errors.New("usage: parttool [flags] <partitions.bin>")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *outputFormat == "" {
		*outputFormat = cfg.OutputFormat
	}

	data, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return fmt.Errorf("reading %s: %w", flagSet.Arg(0), err)
	}

	table, err := parttable.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding partition table: %w", err)
	}

	rows := partitionRows(table)

	formatFn, err := render.Lookup(*outputFormat)
	if err != nil {
		return err
	}
	rendered, err := formatFn(rows)
	if err != nil {
		return err
	}

	return render.WriteFile(*outputFile, rendered)
}

func partitionRows(table *parttable.PartitionTable) []render.Row {
	columns := []string{"name", "type", "subtype", "offset", "size", "flags"}
	rows := make([]render.Row, 0, len(table.Partitions))
	for _, p := range table.Partitions {
		rows = append(rows, render.Row{
			Columns: columns,
			Values: []string{
				p.Name,
				p.Type.String(),
				p.Subtype.String(),
				fmt.Sprintf("0x%x", p.Offset),
				fmt.Sprintf("0x%x", p.Size),
				fmt.Sprintf("0x%x", p.Flags),
			},
		})
	}
	return rows
}
