package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assocrows/pkg/association"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

func (a *app) newColumnsCmd() *cobra.Command {
	var (
		file     string
		prefix   string
		prefixed []string
		column   string
	)
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the column names of a stored row",
		Long: `Columns reads one stored row structure as a JSON object and prints the
column names it exposes, or the value of one column with --get.

Example:
  echo '{"city": "Lyon", "id": {"n": 1}}' | assocrows columns --prefix owner --prefixed owner.city`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			var row types.RowMap
			if err := json.Unmarshal(data, &row); err != nil {
				return fmt.Errorf("%w: parse row: %v", errUsage, err)
			}

			acc := association.AccessorFor(prefixed, prefix)
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("get") {
				v, ok := acc.Get(row, column)
				if !ok {
					return fmt.Errorf("%w: column %q", types.ErrNotFound, column)
				}
				if a.flags.jsonMode {
					return writeJSON(out, v)
				}
				fmt.Fprintln(out, formatValue(v))
				return nil
			}

			names := acc.ColumnNames(row).Sorted()
			if a.flags.jsonMode {
				return writeJSON(out, names)
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the row from file (default: stdin)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "column prefix of the associated entity")
	cmd.Flags().StringArrayVar(&prefixed, "prefixed", nil, "prefixed column name (repeatable)")
	cmd.Flags().StringVar(&column, "get", "", "print the value of this column")
	return cmd
}
