package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDictCmd() *cobra.Command {
	dictCmd := &cobra.Command{
		Use:   "dict",
		Short: "Inspect the word dictionary",
	}

	dictCmd.AddCommand(newDictCheckCmd())
	dictCmd.AddCommand(newDictCountCmd())

	return dictCmd
}

func newDictCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>...",
		Short: "Check words against the dictionary, wildcards included",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}

			dict := app.DictionaryService.Dict()
			results := make(map[string]any, len(args))
			for _, word := range args {
				resolved, valid := app.Judge.ValidWord(word, dict)
				if cfg.Output == "json" {
					results[word] = map[string]any{"valid": valid, "resolved": resolved}
					continue
				}
				if valid {
					fmt.Printf("%s: valid (%s)\n", word, resolved)
				} else {
					fmt.Printf("%s: not a word\n", word)
				}
			}
			if cfg.Output == "json" {
				out.PrintJSON(results)
			}
			return nil
		},
	}
}

func newDictCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of loaded words",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if err := loadDictionary(cmd); err != nil {
				out.PrintError(err)
				return err
			}
			out.PrintMessage(fmt.Sprintf("%d words", app.DictionaryService.WordCount()))
			return nil
		},
	}
}
