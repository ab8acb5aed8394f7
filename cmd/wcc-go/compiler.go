package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wcc-go/packages/compiler/src/config"
	"wcc-go/packages/compiler/src/template_parser"
	"wcc-go/packages/compiler/src/view"
)

// findFiles returns root itself when it is a file, otherwise every file
// under root ending in suffix, minus the excluded endings
func findFiles(root string, suffix string, exclude ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			// Skip node_modules and dist directories
			if info.Name() == "node_modules" || info.Name() == "dist" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, suffix) {
			return nil
		}
		for _, ex := range exclude {
			if strings.HasSuffix(path, ex) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// writeOutput writes content under outputDir, keeping the path of file
// relative to root, or prints it when outputDir is empty
func writeOutput(root, file, outputDir, suffix string, content []byte) error {
	if outputDir == "" {
		fmt.Printf("// %s\n%s", file, content)
		return nil
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || rel == "." {
		rel = filepath.Base(file)
	}
	out := filepath.Join(outputDir, rel+suffix)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(out, content, 0644); err != nil {
		return fmt.Errorf("error writing output file %s: %w", out, err)
	}
	return nil
}

// CompileTemplates parses every template under root and prints, or writes
// next to outputDir, the humanized view forest of each
func CompileTemplates(root, outputDir string, cfg *config.CompilerConfig, logger *slog.Logger) error {
	files, err := findFiles(root, ".html")
	if err != nil {
		return fmt.Errorf("error finding templates: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("no templates found", slog.String("root", root))
		return nil
	}

	options := template_parser.OptionsFromConfig(cfg)
	successCount := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Error("cannot read template", slog.String("file", file), slog.Any("error", err))
			continue
		}

		forest, errs := template_parser.ParseTemplate(string(data), file, options)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e.ContextualMessage())
			}
			continue
		}
		logger.Debug("compiled template",
			slog.String("file", file),
			slog.Int("trees", len(forest.Trees)),
			slog.Int("dom_nodes", forest.DomNodesCount()))

		if err := writeOutput(root, file, outputDir, ".view.txt", []byte(view.Dump(forest))); err != nil {
			return err
		}
		successCount++
	}

	logger.Info("compilation complete", slog.Int("compiled", successCount), slog.Int("total", len(files)))
	if successCount < len(files) {
		return fmt.Errorf("%d of %d templates failed to compile", len(files)-successCount, len(files))
	}
	return nil
}
