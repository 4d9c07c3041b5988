package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/wgslc/diag"
	"github.com/gogpu/wgslc/wgsl"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "tokens <file>",
		Short:  "Dump the token stream of a WGSL file",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(afero.NewOsFs(), args[0])
		},
	}
}

func runTokens(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Errorf("failed to read %s: %w", path, err)
	}
	source := string(data)

	for i, tok := range wgsl.NewLexer(source).Tokenize() {
		pos := diag.PositionOf(source, int(tok.Loc.Start))
		text := tok.Loc.Text(source)
		fmt.Fprintf(os.Stdout, "%4d  %d:%-4d %-14s %q\n", i, pos.Line, pos.Column, tok.Kind, text)
	}
	return nil
}
