package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	goyaml "github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/speakeasy-api/adt"
	"github.com/speakeasy-api/adt/pkg/declfile"
	"github.com/speakeasy-api/adt/pkg/oasexport"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	format     string
	logLevel   adt.LogLevel
	noValidate bool
	files      []string
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	var level string
	fs := flag.NewFlagSet("adt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.format, "format", "text", "output format: text or yaml")
	fs.StringVar(&level, "log-level", "warn", "log level: error, warn, info, debug")
	fs.BoolVar(&cfg.noValidate, "no-validate", false, "disable payload validation")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: adt [flags] FILE...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no declaration files given")
	}
	if cfg.format != "text" && cfg.format != "yaml" {
		return nil, fmt.Errorf("invalid format %q; valid formats: text, yaml", cfg.format)
	}
	var err error
	if cfg.logLevel, err = adt.ParseLogLevel(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "adt: %v\n", err)
		return 1
	}

	opts := adt.DefaultOptions()
	opts.ValidatePayloads = !cfg.noValidate
	logger := adt.NewLogger(cfg.logLevel, stderr)
	opts.Logger = logger
	reg := adt.NewRegistry(opts)

	var schemas []*adt.Schema
	for _, path := range cfg.files {
		log := logger.With(map[string]any{"file": path})
		loaded, err := declfile.LoadFile(reg, path, nil)
		if err != nil {
			log.Errorf("failed to load declarations: %v", err)
			return 1
		}
		log.Infof("loaded %d schemas", len(loaded))
		schemas = append(schemas, loaded...)
	}

	descs := make([]description, 0, len(schemas))
	for _, s := range schemas {
		descs = append(descs, describe(s))
	}

	if cfg.format == "yaml" {
		out, err := goyaml.Marshal(descs)
		if err != nil {
			logger.Errorf("failed to encode schemas: %v", err)
			return 1
		}
		_, _ = stdout.Write(out)
		return 0
	}

	printText(stdout, descs, isTerminal(stdout))
	return 0
}

type description struct {
	Schema      string        `yaml:"schema"`
	Params      []string      `yaml:"params,omitempty"`
	Fingerprint string        `yaml:"fingerprint"`
	Variants    []variantDesc `yaml:"variants"`
}

type variantDesc struct {
	Ordinal int    `yaml:"ordinal"`
	Name    string `yaml:"name"`
	Key     string `yaml:"key"`
	Payload string `yaml:"payload"`
	Erased  bool   `yaml:"erased,omitempty"`
}

func describe(s *adt.Schema) description {
	d := description{
		Schema:      s.String(),
		Params:      s.Params(),
		Fingerprint: oasexport.Fingerprint(s),
	}
	for _, v := range s.Variants() {
		d.Variants = append(d.Variants, variantDesc{
			Ordinal: v.Ordinal,
			Name:    v.Name,
			Key:     v.Key,
			Payload: v.Payload.String(),
			Erased:  v.Erased(),
		})
	}
	return d
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	bold  = "\x1b[1m"
	reset = "\x1b[0m"
)

func printText(w io.Writer, descs []description, color bool) {
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := d.Schema
		if color {
			title = bold + title + reset
		}
		fmt.Fprintln(w, title)
		if len(d.Params) > 0 {
			fmt.Fprintf(w, "  params:      %s\n", strings.Join(d.Params, ", "))
		}
		fmt.Fprintf(w, "  fingerprint: %s\n", shortFingerprint(d.Fingerprint))

		rows := [][]string{{"#", "VARIANT", "KEY", "PAYLOAD"}}
		for _, v := range d.Variants {
			payload := v.Payload
			if v.Erased {
				payload += " (erased)"
			}
			rows = append(rows, []string{fmt.Sprint(v.Ordinal), v.Name, v.Key, payload})
		}
		printTable(w, rows, "  ")
	}
}

// printTable pads columns by display width so wide runes line up.
func printTable(w io.Writer, rows [][]string, indent string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		b.WriteString(indent)
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, b.String())
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
