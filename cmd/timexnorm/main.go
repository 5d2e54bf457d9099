// Command timexnorm runs the interval normalizer over JSON fixture documents.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cyp0633/libtimex/internal/logging"
	"github.com/cyp0633/libtimex/rules"
	"github.com/cyp0633/libtimex/tagger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "timexnorm",
		Short:        "Normalize temporal expressions into intervals",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg := v.GetString("config")
			if cfg == "" {
				return nil
			}
			v.SetConfigFile(cfg)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("rules", "", "interval rule file (.yaml or .json); built-in rules when empty")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	_ = v.BindPFlags(flags)

	v.SetEnvPrefix("TIMEXNORM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newRunCmd(v), newRulesCmd(v))
	return root
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <document.json>",
		Short: "Process a document and print its timexes and intervals as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return err
			}
			format, err := logging.ParseFormat(v.GetString("log-format"))
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), level, format)

			ruleTable, err := loadRules(v.GetString("rules"))
			if err != nil {
				return err
			}
			config := tagger.Config{
				ResolveFunctions:    v.GetBool("resolve-functions"),
				SynthesizeIntervals: v.GetBool("synthesize-intervals"),
				MatchPairs:          v.GetBool("match-pairs"),
				ExtractTemponyms:    v.GetBool("extract-temponyms"),
				Rules:               ruleTable,
			}
			tg, err := tagger.New(config, logger)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			store, err := readDocument(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			report, err := tg.Process(cmd.Context(), store)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newResult(report.RunID, store))
		},
	}

	flags := cmd.Flags()
	flags.Bool("resolve-functions", tagger.DefaultConfig.ResolveFunctions, "resolve embedded calendar function calls")
	flags.Bool("synthesize-intervals", tagger.DefaultConfig.SynthesizeIntervals, "create single-anchor intervals")
	flags.Bool("match-pairs", tagger.DefaultConfig.MatchPairs, "merge interval pairs within sentences")
	flags.Bool("extract-temponyms", tagger.DefaultConfig.ExtractTemponyms, "convert temponyms to intervals")
	_ = v.BindPFlags(flags)

	return cmd
}

func newRulesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Validate and list the interval rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleTable, err := loadRules(v.GetString("rules"))
			if err != nil {
				return err
			}
			if ruleTable == nil {
				ruleTable = rules.Default()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTART\tEND\tPATTERN")
			for _, r := range ruleTable {
				fmt.Fprintf(w, "%s\tgroup(%d)\tgroup(%d)\t%s\n", r.Name, r.StartGroup, r.EndGroup, r.Pattern)
			}
			return w.Flush()
		},
	}
}

// loadRules returns nil for an empty path, selecting the built-in table.
func loadRules(path string) ([]rules.Rule, error) {
	if path == "" {
		return nil, nil
	}
	return rules.Load(path)
}
