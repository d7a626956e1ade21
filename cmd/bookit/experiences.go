package main

import (
	"fmt"

	"bookit/internal/domain/experiences"

	"github.com/spf13/cobra"
)

var search string

var experiencesCmd = &cobra.Command{
	Use:     "experiences",
	Aliases: []string{"ls"},
	Short:   "List experiences",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := newGateway().ListExperiences(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load experiences: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(experiences.Search(list, search)))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <experience-id>",
	Short: "Show an experience and its slots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newGateway().GetExperience(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load experience: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderExperience(*e))
		return nil
	},
}

var bookingCmd = &cobra.Command{
	Use:   "booking <booking-id>",
	Short: "Show a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newGateway().GetBooking(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderConfirmation(*b))
		return nil
	},
}

func init() {
	experiencesCmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, location or description")
}
