package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wcc-go/packages/compiler/src/config"
	"wcc-go/packages/compiler/src/rewrite"
)

// RewriteProject instruments every TypeScript file under root. Declaration
// files are skipped.
func RewriteProject(root, outputDir string, cfg *config.CompilerConfig, logger *slog.Logger) error {
	files, err := findFiles(root, ".ts", ".d.ts")
	if err != nil {
		return fmt.Errorf("error finding sources: %w", err)
	}

	driver := rewrite.NewDriver(cfg, rewrite.WithLogger(logger))
	ctx := context.Background()
	failed := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}

		result, err := driver.RewriteSource(ctx, data, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed++
			continue
		}
		for _, c := range result.Classes {
			if c.Injected {
				logger.Info("instrumented class",
					slog.String("file", file),
					slog.String("class", c.Name),
					slog.Int("sites", c.Sites))
			}
		}
		if err := writeOutput(root, file, outputDir, "", result.Source); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to rewrite", failed, len(files))
	}
	return nil
}
