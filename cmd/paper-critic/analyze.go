// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-critic/internal/analysis"
	"github.com/pdiddy/paper-critic/internal/convert"
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Assess a paper and print the report",
	Long: `Analyze reads a paper (PDF, HTML, Markdown, or plain text; "-" reads
text from stdin) and runs every assessment stage: originality against the
reference corpus, citation extraction and validation, the five critiques,
an optional summary, and the overall grade.

The report is printed as a table by default. Use --format json, yaml,
markdown, or html for machine-readable or shareable output.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	text, err := readPaper(cmd.InOrStdin(), args[0], logger)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn().Str("source", args[0]).Msg("document has no text, scores will be zero")
	}

	var opts []analysis.Option
	if cfg.Critique.PatternsFile != "" {
		lib, err := patterns.Load(cfg.Critique.PatternsFile)
		if err != nil {
			return err
		}
		opts = append(opts, analysis.WithLibrary(lib))
	}

	refs, err := analysis.LoadCorpus(ctx, cfg.Corpus)
	if err != nil {
		logger.Warn().Err(err).Msg("corpus unavailable, external similarity disabled")
	}
	opts = append(opts, analysis.WithReferences(refs))

	rep := analysis.New(cfg, opts...).Analyze(ctx, text)
	rep.Source = args[0]

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		out = f
		logger.Info().Str("path", path).Str("format", string(format)).Msg("writing report")
	}
	return report.Write(out, rep, format)
}

// readPaper returns the text of source, or of stdin when source is "-".
// A missing file or an unsupported type is an error. A file that exists
// but yields no text (corrupt or scanned PDF, unreadable HTML) is analyzed
// as an empty document.
func readPaper(stdin io.Reader, source string, logger *zerolog.Logger) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("reading paper: %w", err)
	}
	conv, err := convert.ForPath(source)
	if err != nil {
		return "", err
	}
	text, err := conv.Convert(source)
	if err != nil {
		logger.Warn().Err(err).Str("source", source).Msg("text extraction failed, analyzing an empty document")
		return "", nil
	}
	return text, nil
}

func init() {
	flags := analyzeCmd.Flags()
	flags.StringP("format", "f", string(report.FormatTable), "output format: "+formatList())
	flags.StringP("output", "o", "", "write the report to a file instead of stdout")
	flags.String("corpus-dir", "", "directory of reference texts (overrides corpus.dir)")
	flags.String("backend", "", "citation validator: semantic_scholar, crossref, or heuristic")
	flags.String("summary", "", "summarizer: anthropic or extractive")

	_ = viper.BindPFlag("corpus.dir", flags.Lookup("corpus-dir"))
	_ = viper.BindPFlag("citations.backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("summary.backend", flags.Lookup("summary"))

	rootCmd.AddCommand(analyzeCmd)
}

func formatList() string {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
