package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/engine"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/rules"
	"github.com/sells-group/nil-compliance/internal/scoring"
	"github.com/sells-group/nil-compliance/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "nil-compliance.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initRules builds the jurisdiction table. Precedence: explicit rules file,
// then rules persisted in the store, then the built-in seed (which is also
// written back so the next start reads it from the store).
func initRules(ctx context.Context, st store.Store) (*rules.Table, error) {
	if cfg.Rules.File != "" {
		list, err := rules.LoadFile(cfg.Rules.File)
		if err != nil {
			return nil, eris.Wrapf(err, "load rules file %s", cfg.Rules.File)
		}
		if err := st.ReplaceRules(ctx, list); err != nil {
			return nil, eris.Wrap(err, "persist rules")
		}
		return rules.New(list), nil
	}

	list, err := st.LoadRules(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "load rules from store")
	}
	if len(list) == 0 {
		list = rules.Seed()
		if err := st.ReplaceRules(ctx, list); err != nil {
			return nil, eris.Wrap(err, "seed rules")
		}
		zap.L().Info("seeded jurisdiction rules", zap.Int("count", len(list)))
	}
	return rules.New(list), nil
}

// initEngine wires store, scorer and rules into a ready engine. The caller
// owns the returned store and must Close it.
func initEngine(ctx context.Context) (*engine.Engine, store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, nil, eris.Wrap(err, "migrate store")
	}

	scorer, err := scoring.NewEngine(cfg.ScoringEngineConfig())
	if err != nil {
		st.Close()
		return nil, nil, eris.Wrap(err, "build scorer")
	}

	tbl, err := initRules(ctx, st)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	return engine.New(st, scorer, tbl, nil), st, nil
}

// readFactsFile reads deal facts JSON from a file, or stdin when path is "-".
func readFactsFile(path string) (model.DealFacts, error) {
	var facts model.DealFacts
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return facts, eris.Wrapf(err, "read facts %s", path)
	}
	if err := json.Unmarshal(data, &facts); err != nil {
		return facts, eris.Wrap(err, "parse facts JSON")
	}
	return facts, nil
}

// printJSON writes v to stdout, indented.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
