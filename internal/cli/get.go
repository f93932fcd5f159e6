package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphlayout/layered/internal/store"
)

// getCommand builds the "get" subcommand: fetch a previously saved
// graph/layout pair by name.
func (c *CLI) getCommand() *cobra.Command {
	var (
		output    string
		storeURI  string
		storeDB   string
		storeColl string
	)

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Fetch a layout saved under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.getLayout(cmd, args[0], output, storeURI, storeDB, storeColl)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&storeURI, "store", "", "mongo URI to fetch from (required)")
	cmd.Flags().StringVar(&storeDB, "store-db", "layered", "mongo database to fetch from")
	cmd.Flags().StringVar(&storeColl, "store-collection", "graphs", "mongo collection to fetch from")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

func (c *CLI) getLayout(cmd *cobra.Command, name, output, storeURI, storeDB, storeColl string) error {
	st, err := store.Connect(cmd.Context(), storeURI, storeDB, storeColl)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer st.Close(cmd.Context())

	rec, err := st.Get(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("get %s: %w", name, err)
	}
	if rec == nil {
		return fmt.Errorf("no graph named %s", name)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	c.Logger.Info("fetched", "name", name, "output", output)
	return nil
}
