// Command formolfmt reflows Formol text, C/C++ block comments, or
// prefixed block comments read from a file or from standard input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eepp/formol"
	"gopkg.in/yaml.v3"
)

const (
	modeText   = "text"
	modeC      = "c"
	modePrefix = "prefix"
)

// loadConfigFile loads a Reflower configuration from the YAML file at
// path.
func loadConfigFile(path string) (formol.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return formol.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg formol.Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return formol.Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// resolveConfig builds the effective configuration: the YAML config
// file at configPath (if any) first, then any explicitly set flag
// overriding it.
func resolveConfig(configPath string, width, startCol int, prefix string,
	setFlags map[string]bool) (formol.Config, error) {
	var cfg formol.Config

	if configPath != "" {
		var err error

		cfg, err = loadConfigFile(configPath)
		if err != nil {
			return formol.Config{}, err
		}
	}

	if setFlags["width"] || cfg.MaxLineLen == 0 {
		cfg.MaxLineLen = width
	}
	if setFlags["start-col"] || cfg.StartCol == 0 {
		cfg.StartCol = startCol
	}
	if setFlags["prefix"] || cfg.Prefix == "" {
		cfg.Prefix = prefix
	}

	return cfg, nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) >= 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}

	return io.ReadAll(os.Stdin)
}

// writeOutput writes text, followed by a newline, to the file at path,
// or to standard output when path is empty or "-".
func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		fmt.Println(text)
		return nil
	}

	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}

func main() {
	width := flag.Int("width", 72, "Maximum line length")
	startCol := flag.Int("start-col", 0, "Column of the comment in its document")
	prefix := flag.String("prefix", "# ", "Line prefix (with -mode prefix)")
	mode := flag.String("mode", modeText, "Input kind: text|c|prefix")
	configPath := flag.String("config", "", "YAML style file")
	outPath := flag.String("out", "", "Output file (default: standard output)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: formolfmt [options] [<input-file>]\n")
		fmt.Fprintf(os.Stderr, "Reads from standard input without an input file argument.\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg, err := resolveConfig(*configPath, *width, *startCol, *prefix, setFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	reflower, err := formol.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	data, err := readInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	var out string

	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case modeText:
		out = reflower.Format(string(data))
	case modeC:
		out, err = reflower.FormatCBlockComment(string(data))
	case modePrefix:
		out, err = reflower.FormatPrefixedBlockComment(string(data))
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (allowed: text, c, prefix)\n", *mode)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting comment: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutput(*outPath, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}
