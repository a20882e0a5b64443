package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect or reset the persisted store",
	}
	cmd.AddCommand(newStoreDumpCmd(a), newStoreResetCmd(a))
	return cmd
}

func newStoreDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored slot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, b, err := openStore(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			dump, err := st.Dump(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(dump, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func newStoreResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every slot; the next load seeds the defaults again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			st, _, b, err := openStore(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			if err := st.Reset(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "store reset (%s)\n", b.name)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
