package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List stored schedule profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			profiles, err := store.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No saved profiles.")
				return nil
			}
			for _, p := range profiles {
				marker := " "
				if p.Name == a.profile {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-20s %s\n", marker, p.Name,
					formatMuted(fmt.Sprintf("v%d, updated %s", p.Version, p.UpdatedAt.Local().Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if !promptYesNo(fmt.Sprintf("Delete profile %q?", args[0])) {
				return nil
			}
			if err := store.DeleteProfile(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "copy <from> <to>",
		Short: "Copy a profile under a new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			ok, err := store.CopyProfile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("profile %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
