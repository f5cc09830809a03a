// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/paper-critic/internal/convert"
	"github.com/pdiddy/paper-critic/internal/document"
)

// ImportResult holds counts from one import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// Total returns the number of files processed.
func (r ImportResult) Total() int {
	return r.Imported + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed to import.
func (r ImportResult) HasFailures() bool {
	return r.Failed > 0
}

// Import extracts text from every supported file under paths and upserts
// it into s. Directories are walked recursively. Files with no text are
// skipped; extraction or storage failures are counted and reported to w
// without stopping the run.
func Import(ctx context.Context, s *Store, paths []string, w io.Writer) (ImportResult, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	for _, path := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		id := documentID(path)
		text, err := convert.Extract(path)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", id, err)
			result.Failed++
			continue
		}

		doc := document.New(text)
		if doc.IsEmpty() {
			fmt.Fprintf(w, "skipped:  %s (no text)\n", id)
			result.Skipped++
			continue
		}

		err = s.Upsert(ctx, Document{
			ID:        id,
			Title:     doc.Title(),
			Content:   text,
			WordCount: doc.WordCount(),
		})
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", id, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "imported: %s (%d words)\n", id, doc.WordCount())
		result.Imported++
	}

	fmt.Fprintf(w, "\nImport summary: %d imported, %d skipped, %d failed (total: %d)\n",
		result.Imported, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// LoadDir reads up to limit plain-text or Markdown documents from dir,
// sorted by file name. Unreadable files are skipped. A non-positive limit
// loads everything.
func LoadDir(dir string, limit int) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []Document
	for _, e := range entries {
		if limit > 0 && len(docs) >= limit {
			break
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".txt" && ext != ".md") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		text, err := convert.Extract(path)
		if err != nil {
			continue
		}
		doc := document.New(text)
		docs = append(docs, Document{
			ID:        documentID(path),
			Title:     doc.Title(),
			Content:   text,
			WordCount: doc.WordCount(),
		})
	}
	return docs, nil
}

// collectFiles expands directories into the supported files they contain.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && convert.Supported(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	return files, nil
}

// documentID derives a corpus id from a file name.
func documentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
