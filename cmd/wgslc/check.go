package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/wgslc"
	"github.com/gogpu/wgslc/diag"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse and validate WGSL files",
		Long:  "Run the full front end (lexer, parser, semantic analyser) over each file and print diagnostics as code frames.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(afero.NewOsFs(), args)
		},
	}
}

func runCheck(fs afero.Fs, paths []string) error {
	log := newLogger()
	colored := colorEnabled()

	failed := 0
	for _, path := range paths {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.Errorf("failed to read %s: %w", path, err)
		}
		source := string(data)

		log.Debug().Str("file", path).Int("bytes", len(source)).Msg("checking")

		tree, diags := wgslc.Check(source)
		if !diags.HasErrors() {
			log.Debug().Str("file", path).Int("decls", len(tree.RootDecls())).Msg("valid")
			continue
		}

		failed++
		renderer := diag.NewRenderer(os.Stderr, path, colored)
		renderer.RenderAll(source, diags)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d files had errors", failed, len(paths))
	}
	return nil
}

// colorEnabled resolves the --color flag. "auto" defers to the
// fatih/color terminal detection (which also honors NO_COLOR).
func colorEnabled() bool {
	switch flagColor {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}
