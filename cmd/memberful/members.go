package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/memberwise/memberful-go/api"
	"github.com/memberwise/memberful-go/webhooks"
)

func membersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Inspect members",
	}
	cmd.AddCommand(membersListCmd())
	cmd.AddCommand(membersGetCmd())
	return cmd
}

func membersListCmd() *cobra.Command {
	var (
		page    int
		perPage int
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient()
			if err != nil {
				return err
			}

			if all {
				members, err := client.Members.ListAll(ctx)
				if err != nil {
					return fmt.Errorf("failed to list members: %w", err)
				}
				for i := range members {
					printMember(&members[i])
				}
				fmt.Printf("\n%d members\n", len(members))
				return nil
			}

			result, err := client.Members.List(ctx, &api.ListParams{Page: page, PerPage: perPage})
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}
			for i := range result.Records {
				printMember(&result.Records[i])
			}
			fmt.Printf("\npage %d of %d (%d total)\n", result.CurrentPage, result.TotalPages, result.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", api.DefaultPerPage, "records per page")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	return cmd
}

func membersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a single member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q: %w", args[0], err)
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			member, err := client.Members.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get member: %w", err)
			}
			printMember(member)
			return nil
		},
	}
}

func printMember(m *webhooks.Member) {
	name := ""
	if m.FullName != nil {
		name = *m.FullName
	}
	fmt.Printf("  %d  %s  %s\n", m.ID, m.Email, name)
}
