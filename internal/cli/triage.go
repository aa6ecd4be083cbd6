package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

func newDetectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <text>",
		Short: "Detect the language of a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			preferred, err := opts.preferred()
			if err != nil {
				return err
			}
			lang := triage.DetectOr(strings.Join(args, " "), preferred)
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]triage.Language{"language": lang})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), lang)
			return err
		},
	}
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Show language, topic and subtopic for a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			preferred, err := opts.preferred()
			if err != nil {
				return err
			}
			text := utils.Sanitize(strings.Join(args, " "))
			lang := triage.DetectOr(text, preferred)
			topic := triage.Classify(text, lang)
			var sub triage.Subtopic
			if topic == triage.TopicMentalHealth {
				sub = triage.DetectSubtopic(text, lang)
			}

			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), triage.Result{Language: lang, Topic: topic, Subtopic: sub})
			}
			line := fmt.Sprintf("language=%s topic=%s", lang, topic)
			if sub != "" {
				line += " subtopic=" + string(sub)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
}

func newRespondCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond <text>",
		Short: "Run the full triage pipeline and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			preferred, err := opts.preferred()
			if err != nil {
				return err
			}

			var engineOpts []triage.Option
			if cmd.Flags().Changed("seed") {
				engineOpts = append(engineOpts, triage.WithSeed(opts.seed))
			}
			res := triage.NewEngine(engineOpts...).Triage(utils.Sanitize(strings.Join(args, " ")), preferred)

			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "[%s/%s] %s\n", res.Language, res.Topic, res.Response)
			return err
		},
	}
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for general replies (default: time based)")
	return cmd
}

func newLanguagesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			langs := triage.Languages()
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), langs)
			}
			for _, l := range langs {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-3s %-10s %s\n", l.Code, l.Name, l.NativeName); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
