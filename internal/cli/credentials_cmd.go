package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medicaps/clubs-portal/internal/core/ports"
	"github.com/medicaps/clubs-portal/internal/core/service"
)

func newCredentialsCmd(a *app) *cobra.Command {
	var add bool
	cmd := &cobra.Command{
		Use:   "credentials <club-id>",
		Short: "Generate member credentials for a club",
		Long:  "Generates a username and password for the club. With --add the member is also stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, sealer, b, err := openStore(ctx, a.cfg, a.log)
			if err != nil {
				return err
			}
			defer func() { _ = b.close() }()

			members := service.NewMemberService(st, sealer, a.log)
			creds, err := members.GenerateCredentials(ctx, args[0])
			if err != nil {
				return err
			}
			if add {
				if _, err := members.Add(ctx, ports.MemberInput{
					Username: creds.Username,
					Password: creds.Password,
					ClubID:   args[0],
				}); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "username: %s\npassword: %s\n", creds.Username, creds.Password)
			return err
		},
	}
	cmd.Flags().BoolVar(&add, "add", false, "Store the generated member")
	return cmd
}
