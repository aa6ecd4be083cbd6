// Package cli implements the triagetester commands for exercising the
// triage engine offline.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
)

type options struct {
	format string
	lang   string
	seed   uint64
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "triagetester",
		Short:         "Run the MindWell triage engine from the command line",
		Long:          "Detect languages, classify messages and preview template replies without starting the API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: json or text")
	root.PersistentFlags().StringVarP(&opts.lang, "lang", "l", "en", "Preferred language when the text has no signal")

	root.AddCommand(
		newDetectCmd(opts),
		newClassifyCmd(opts),
		newRespondCmd(opts),
		newLanguagesCmd(opts),
		newAnalyticsCmd(opts),
	)
	return root
}

func (o *options) preferred() (triage.Language, error) {
	lang, ok := triage.ParseLanguage(o.lang)
	if !ok {
		return "", fmt.Errorf("unsupported language %q", o.lang)
	}
	return lang, nil
}

func (o *options) validateFormat() error {
	if o.format != "json" && o.format != "text" {
		return fmt.Errorf("unknown format %q (want json or text)", o.format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
