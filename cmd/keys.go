package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"counter-terminal/pkg/keymap"
)

var keysFormat string

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:     "keys",
	Short:   "List the key bindings",
	Aliases: []string{"bindings"},
	Args:    cobra.NoArgs,
	RunE:    runKeys,
}

func init() {
	keysCmd.Flags().StringVarP(&keysFormat, "format", "f", "table", "output format (table, json)")
}

// keyInfo is the JSON form of a binding
type keyInfo struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	bindings := keymap.Default().List()

	switch keysFormat {
	case "json":
		infos := make([]keyInfo, 0, len(bindings))
		for _, b := range bindings {
			infos = append(infos, keyInfo{
				Name:        b.Name,
				Key:         b.Label(),
				Action:      b.Action.String(),
				Description: b.Description,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)

	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tACTION\tDESCRIPTION")
		for _, b := range bindings {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Label(), b.Action, b.Description)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown format: %s (valid: table, json)", keysFormat)
	}
}
