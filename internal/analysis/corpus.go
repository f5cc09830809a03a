// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-critic/internal/corpus"
	"github.com/pdiddy/paper-critic/internal/originality"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// LoadCorpus reads the reference corpus named by cfg. A configured
// directory takes precedence over the database. A database file that does
// not exist yet yields an empty corpus rather than an error.
func LoadCorpus(ctx context.Context, cfg types.CorpusConfig) ([]originality.Reference, error) {
	logger := zerolog.Ctx(ctx)

	var docs []corpus.Document
	switch {
	case cfg.Dir != "":
		d, err := corpus.LoadDir(cfg.Dir, cfg.MaxDocuments)
		if err != nil {
			return nil, err
		}
		docs = d
	case cfg.DBPath != "":
		if _, err := os.Stat(cfg.DBPath); errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", cfg.DBPath).Msg("corpus database missing, originality uses internal repetition only")
			return nil, nil
		}
		store, err := corpus.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		d, err := store.Load(ctx, cfg.MaxDocuments)
		if err != nil {
			return nil, fmt.Errorf("loading corpus: %w", err)
		}
		docs = d
	}

	refs := make([]originality.Reference, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, originality.Reference{ID: d.ID, Text: d.Content})
	}
	logger.Debug().Int("documents", len(refs)).Msg("corpus loaded")
	return refs, nil
}
