// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-critic/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the reference corpus used for originality scoring",
	Long: `Corpus manages the local SQLite database of reference texts that
originality scoring compares papers against. Use subcommands to import
files, list what is stored, or remove entries.`,
}

// --- import subcommand ---

var corpusImportCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Import papers into the corpus",
	Long: `Import extracts text from PDF, HTML, Markdown, and plain-text files and
stores it in the corpus database. Directories are walked recursively.
Re-importing a file replaces its stored text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := corpus.Import(cmd.Context(), store, args, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to import", result.Failed)
	}
	return nil
}

// --- list subcommand ---

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the corpus",
	RunE:  runCorpusList,
}

func runCorpusList(cmd *cobra.Command, args []string) error {
	store, err := corpus.Open(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "Corpus is empty.")
		return nil
	}

	fmt.Fprintf(out, "%-30s  %-50s  %8s  %s\n", "ID", "Title", "Words", "Added")
	fmt.Fprintln(out, strings.Repeat("-", 110))
	for _, d := range docs {
		id := d.ID
		if len(id) > 30 {
			id = id[:27] + "..."
		}
		title := d.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(out, "%-30s  %-50s  %8d  %s\n", id, title, d.WordCount, d.AddedAt)
	}
	fmt.Fprintf(out, "\n%d documents\n", len(docs))
	return nil
}

// --- remove subcommand ---

var corpusRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove documents from the corpus by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := corpus.Open(cfg.Corpus.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
		}
		return nil
	},
}

func init() {
	corpusListCmd.Flags().Bool("json", false, "output documents as JSON")

	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusRemoveCmd)
	rootCmd.AddCommand(corpusCmd)
}
