package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/daedalus-dc/internal/config"
	"github.com/cwbudde/daedalus-dc/internal/manifest"
)

// resolveInput classifies a single CLI argument as a `.src` manifest
// (expanded via internal/manifest) or a single source file, per spec.md
// §6's InputFile enum, and returns the ordered list of source paths to
// load.
func resolveInput(arg string) (config.InputFile, []string, error) {
	if strings.HasSuffix(strings.ToLower(arg), ".src") {
		input := config.NewSrc(arg)
		paths, err := manifest.ExpandPaths(arg)
		if err != nil {
			return input, nil, err
		}
		return input, paths, nil
	}
	return config.NewSingleFile(arg), []string{arg}, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
