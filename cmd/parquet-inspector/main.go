package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/olekukonko/tablewriter"

	"github.com/parquet-forensics/inspector/internal/config"
	"github.com/parquet-forensics/inspector/internal/report"
	"github.com/parquet-forensics/inspector/pkg/inspector"
)

var (
	outputMode string
	logLevel   string
	configPath string
)

func init() {
	flag.StringVar(&outputMode, "output-mode", "default", "one of: default, segments, html")
	flag.StringVar(&logLevel, "log-level", "", "override the config file's log level (debug/info/warn/error)")
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: parquet-inspector [flags] <file>")
		os.Exit(1)
	}
	path := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := newLeveledLogger(cfg.LogLevel)

	result, err := inspector.Parse(path, inspector.Options{
		Logger:              logger,
		WarnLogsPerSecond:   cfg.WarnLogsPerSecond,
		TruncateBinaryBytes: cfg.TruncateBinaryBytes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error inspecting %q: %v\n", path, err)
		os.Exit(1)
	}

	switch outputMode {
	case "segments":
		printSegments(result, cfg)
	case "html":
		if err := inspector.RenderHTML(os.Stdout, path, result.Segments, aggregates(result, cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "error rendering html: %v\n", err)
			os.Exit(1)
		}
	default:
		printDefault(result, cfg)
	}
}

// newLeveledLogger wraps a plain go-kit logger with a level filter
// parsed from a config string.
func newLeveledLogger(levelName string) log.Logger {
	logger := log.NewLogfmtLogger(os.Stderr)
	var lvl level.Option
	switch strings.ToLower(levelName) {
	case "debug":
		lvl = level.AllowDebug()
	case "warn":
		lvl = level.AllowWarn()
	case "error":
		lvl = level.AllowError()
	default:
		lvl = level.AllowInfo()
	}
	return level.NewFilter(logger, lvl)
}

func aggregates(result *inspector.Result, cfg *config.Config) []report.AggregatedColumn {
	pages := inspector.Pages(result.Segments, result.ColumnOffsets, result.ColumnOrder, cfg.TruncateBinaryBytes)
	return inspector.AggregateColumns(result.FooterJSON, pages, cfg.StatsStringTruncateChars)
}

func printSegments(result *inspector.Result, cfg *config.Config) {
	projection := make([]any, 0, len(result.Segments))
	for _, seg := range result.Segments {
		projection = append(projection, inspector.SegmentToJSON(seg, cfg.TruncateBinaryBytes))
	}
	emitJSON(projection, cfg.JSONIndent)
}

func printDefault(result *inspector.Result, cfg *config.Config) {
	summary := inspector.Summary(result.FooterJSON, result.Segments)

	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader([]string{"field", "value"})
	for _, key := range []string{
		"num_rows", "num_row_groups", "num_columns",
		"num_pages", "num_data_pages", "num_v1_data_pages", "num_v2_data_pages", "num_dict_pages",
	} {
		w.Append([]string{key, fmt.Sprintf("%v", summary[key])})
	}
	for _, key := range []string{
		"uncompressed_page_data_size", "compressed_page_data_size",
		"column_index_size", "offset_index_size", "bloom_filter_size",
		"page_header_size", "footer_size", "file_size",
	} {
		w.Append([]string{key, humanize.Bytes(uint64(asUint(summary[key])))})
	}
	w.Render()

	fmt.Println()
	emitJSON(result.FooterJSON, cfg.JSONIndent)
}

func emitJSON(v any, indent string) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error encoding json: %v\n", err)
	}
}

func asUint(v any) uint64 {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0
		}
		return uint64(n)
	case int:
		if n < 0 {
			return 0
		}
		return uint64(n)
	default:
		s := fmt.Sprintf("%v", v)
		u, _ := strconv.ParseUint(s, 10, 64)
		return u
	}
}
