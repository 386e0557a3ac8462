package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Lumos-Labs-HQ/mockforge/internal/config"
	"github.com/Lumos-Labs-HQ/mockforge/internal/engine"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// buildEngine loads config and constructs an engine with any custom
// schemas registered.
func buildEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	eng := engine.New(engine.Options{
		MaxRecords:    cfg.MaxRecords,
		DefaultFormat: cfg.Format(),
	})

	if cfg.SchemaDir != "" {
		if err := schema.LoadDir(eng.Registry(), cfg.SchemaDir); err != nil {
			return nil, nil, fmt.Errorf("failed to load custom schemas: %w", err)
		}
	}
	return eng, cfg, nil
}

// writeArtifact sends the artifact to a file when --out is set, to
// stdout otherwise. Status chatter goes to stderr so piped output
// stays clean.
func writeArtifact(artifact *types.Artifact, outPath string) error {
	if outPath == "" {
		_, err := os.Stdout.Write(artifact.Data)
		return err
	}

	if err := os.WriteFile(outPath, artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "✅ Wrote %d bytes of %s to %s\n",
		len(artifact.Data), artifact.Format, outPath)
	return nil
}
