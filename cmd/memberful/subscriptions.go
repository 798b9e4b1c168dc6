package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memberwise/memberful-go/api"
	"github.com/memberwise/memberful-go/webhooks"
)

func subscriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Inspect subscriptions",
	}
	cmd.AddCommand(subscriptionsListCmd())
	return cmd
}

func subscriptionsListCmd() *cobra.Command {
	var (
		memberID int64
		page     int
		perPage  int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient()
			if err != nil {
				return err
			}

			var filter *int64
			if cmd.Flags().Changed("member-id") {
				filter = &memberID
			}

			if all {
				subs, err := client.Subscriptions.ListAll(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to list subscriptions: %w", err)
				}
				for i := range subs {
					printSubscription(&subs[i])
				}
				fmt.Printf("\n%d subscriptions\n", len(subs))
				return nil
			}

			result, err := client.Subscriptions.List(ctx, &api.SubscriptionListParams{
				MemberID: filter,
				Page:     page,
				PerPage:  perPage,
			})
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}
			for i := range result.Records {
				printSubscription(&result.Records[i])
			}
			fmt.Printf("\npage %d of %d (%d total)\n", result.CurrentPage, result.TotalPages, result.TotalCount)
			return nil
		},
	}

	cmd.Flags().Int64Var(&memberID, "member-id", 0, "filter by member id")
	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&perPage, "per-page", api.DefaultPerPage, "records per page")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	return cmd
}

func printSubscription(s *webhooks.Subscription) {
	status := "inactive"
	if s.Active {
		status = "active"
	}
	fmt.Printf("  %d  %s  plan=%s  member=%s  expires=%s\n",
		s.ID, status, s.Plan.Name, s.Member.Email, s.ExpiresAt)
}
