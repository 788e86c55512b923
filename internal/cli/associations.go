// Association commands: put, get, list, remove.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assocrows/internal/sqlite"
	"github.com/mesh-intelligence/assocrows/pkg/association"
	"github.com/mesh-intelligence/assocrows/pkg/types"
)

// putInput is the document read by the put command.
type putInput struct {
	Key  types.AssociationKey `json:"key"`
	Rows []types.Tuple        `json:"rows"`
}

// rowsOutput is the JSON form of a fetched association.
type rowsOutput struct {
	DocID   string        `json:"doc_id"`
	DocKey  string        `json:"doc_key"`
	Version int64         `json:"version"`
	Rows    []types.Tuple `json:"rows"`
}

func (a *app) newPutCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Store the rows of an association",
		Long: `Put reads an association as JSON and replaces its stored rows.

The input holds the association key and the rows as flat column maps:

  {"key": {"metadata": {"table": "Order_items", "key_columns": ["order_id"],
           "row_key_columns": ["order_id", "item.id"],
           "associated_entity_key_columns": ["item.id"]},
           "key_values": ["o1"]},
   "rows": [{"order_id": "o1", "item.id": "i1", "qty": 2}]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			var in putInput
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("%w: parse association: %v", errUsage, err)
			}

			return a.withStore(func(store *sqlite.Backend) error {
				id, err := association.Save(store, in.Key, in.Rows)
				if err != nil {
					return fmt.Errorf("put association: %w", err)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"doc_id": id, "rows": len(in.Rows)})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %d rows in %s\n", len(in.Rows), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the association from file (default: stdin)")
	return cmd
}

func (a *app) newGetCmd() *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "get <table>",
		Short: "Print the rows of an association",
		Long: `Get prints every row of the association identified by its table and key.

Example:
  assocrows get Order_items --key order_id=o1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKeyPairs(args[0], keys)
			if err != nil {
				return err
			}
			return a.withStore(func(store *sqlite.Backend) error {
				doc, err := store.GetAssociation(key)
				if err != nil {
					return fmt.Errorf("get association: %w", err)
				}
				return a.printDocument(cmd, doc)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "key column value as column=value (repeatable)")
	return cmd
}

func (a *app) printDocument(cmd *cobra.Command, doc *types.AssociationDocument) error {
	rows, err := association.Rows(doc)
	if err != nil {
		return err
	}
	tuples := make([]types.Tuple, 0, len(rows))
	for _, r := range rows {
		tuples = append(tuples, r.Tuple())
	}

	docKey, err := doc.Key.DocumentKey()
	if err != nil {
		return err
	}
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), rowsOutput{
			DocID:   doc.DocID,
			DocKey:  docKey,
			Version: doc.Version,
			Rows:    tuples,
		})
	}
	for _, t := range tuples {
		fmt.Fprintln(cmd.OutOrStdout(), formatTuple(t))
	}
	return nil
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [table]",
		Short: "List stored associations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table string
			if len(args) == 1 {
				table = args[0]
			}
			return a.withStore(func(store *sqlite.Backend) error {
				docs, err := store.ListAssociations(table)
				if err != nil {
					return fmt.Errorf("list associations: %w", err)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), docs)
				}
				for _, d := range docs {
					docKey, err := d.Key.DocumentKey()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tv%d\t%d rows\n", d.DocID, docKey, d.Version, len(d.Elements))
				}
				return nil
			})
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "remove <table>",
		Short: "Remove an association",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKeyPairs(args[0], keys)
			if err != nil {
				return err
			}
			return a.withStore(func(store *sqlite.Backend) error {
				if err := store.RemoveAssociation(key); err != nil {
					return fmt.Errorf("remove association: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "removed", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "key column value as column=value (repeatable)")
	return cmd
}
