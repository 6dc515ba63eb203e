// nvscat decodes an esp-idf NVS partition image and prints its namespaces,
// entries, and pages, or drops into an interactive browser.
//
// Usage:
//
//	nvscat [flags] <nvs.bin>
//
// Flags:
//
//	--output text|csv|json|yaml|fb   Output format (default: config/text)
//	--compress none|zstd|lz4         Compress rendered output
//	--output-file <path>             Write to a file instead of stdout
//	--include-erased                 Surface erased-but-undecoded slots
//	--namespace <name>                Restrict entries to one namespace
//	--config <path>                  Override the default config file
//	--browse                         Drop into an interactive REPL
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/halide-systems/nvsinspect/config"
	"github.com/halide-systems/nvsinspect/nvs"
	"github.com/halide-systems/nvsinspect/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "nvscat: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out, errOut io.Writer) error {
	flagSet := flag.NewFlagSet("nvscat", flag.ContinueOnError)
	flagSet.SetOutput(errOut)

	outputFormat := flagSet.String("output", "", "output format: text, csv, json, yaml, fb")
	compress := flagSet.String("compress", "", "compression codec: none, zstd, lz4")
	outputFile := flagSet.String("output-file", "", "write output to this file instead of stdout")
	includeErased := flagSet.Bool("include-erased", false, "surface erased slot states")
	namespace := flagSet.String("namespace", "", "restrict entries to one namespace")
	configPath := flagSet.String("config", "", "path to a HuJSON config file")
	browse := flagSet.Bool("browse", false, "start an interactive browser")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return errors.New("usage: nvscat [flags] <nvs.bin>")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *outputFormat == "" {
		*outputFormat = cfg.OutputFormat
	}
	if !flagSet.Changed("include-erased") {
		*includeErased = cfg.IncludeErased
	}

	data, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		return fmt.Errorf("reading %s: %w", flagSet.Arg(0), err)
	}

	image, err := nvs.Decode(data, *includeErased, nil)
	if err != nil {
		return fmt.Errorf("decoding nvs image: %w", err)
	}

	if *browse {
		return browseRepl(image, out)
	}

	rows := entryRows(image, *namespace)

	formatFn, err := render.Lookup(*outputFormat)
	if err != nil {
		return err
	}
	rendered, err := formatFn(rows)
	if err != nil {
		return err
	}
	rendered, err = render.Compress(*compress, rendered)
	if err != nil {
		return err
	}

	if *outputFile != "" {
		return render.WriteFile(*outputFile, rendered)
	}
	_, err = out.Write(rendered)
	return err
}

func entryRows(image *nvs.Nvs, namespaceFilter string) []render.Row {
	columns := []string{"namespace", "key", "kind", "value"}
	var rows []render.Row

	for _, ns := range image.Namespaces() {
		if namespaceFilter != "" && ns != namespaceFilter {
			continue
		}
		entries, _ := image.Namespace(ns)
		for key, entry := range entries {
			rows = append(rows, render.Row{
				Columns: columns,
				Values:  []string{ns, key, valueKindName(entry.Value.Kind), entry.Value.String()},
			})
		}
	}
	return rows
}

// browseRepl is a peterh/liner-driven interactive shell over a decoded
// image: "ns" lists namespaces, "get <ns> <key>" looks up one entry,
// "pages" summarizes page headers.
func browseRepl(image *nvs.Nvs, out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(out, "nvscat interactive browser — commands: ns, get <ns> <key>, pages, exit")

	for {
		input, err := line.Prompt("nvscat> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		switch fields := splitFields(input); {
		case len(fields) == 0:
			continue
		case fields[0] == "exit" || fields[0] == "quit":
			return nil
		case fields[0] == "ns":
			for _, ns := range image.Namespaces() {
				fmt.Fprintln(out, ns)
			}
		case fields[0] == "get" && len(fields) == 3:
			entries, ok := image.Namespace(fields[1])
			if !ok {
				fmt.Fprintf(out, "no such namespace: %s\n", fields[1])
				continue
			}
			entry, ok := entries[fields[2]]
			if !ok {
				fmt.Fprintf(out, "no such key: %s\n", fields[2])
				continue
			}
			fmt.Fprintln(out, entry.Value.String())
		case fields[0] == "pages":
			for i, p := range image.Pages() {
				fmt.Fprintf(out, "page %d: state=%s seq=%d\n", i, p.State, p.SeqNo)
			}
		default:
			fmt.Fprintln(out, "unknown command")
		}
	}
}

func valueKindName(k nvs.ValueKind) string {
	switch k {
	case nvs.KindU8:
		return "u8"
	case nvs.KindI8:
		return "i8"
	case nvs.KindU16:
		return "u16"
	case nvs.KindI16:
		return "i16"
	case nvs.KindU32:
		return "u32"
	case nvs.KindI32:
		return "i32"
	case nvs.KindU64:
		return "u64"
	case nvs.KindI64:
		return "i64"
	case nvs.KindString:
		return "string"
	case nvs.KindBlob:
		return "blob"
	case nvs.KindRaw:
		return "raw"
	case nvs.KindAny:
		return "any"
	default:
		return "unknown"
	}
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}
