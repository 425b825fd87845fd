package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review commands",
}

func reviewForm(cmd *cobra.Command) dto.CreateReviewDTO {
	name, _ := cmd.Flags().GetString("name")
	form := dto.CreateReviewDTO{UserName: name}
	if cmd.Flags().Changed("rating") {
		rating, _ := cmd.Flags().GetFloat64("rating")
		form.Rating = &rating
	}
	if cmd.Flags().Changed("comment") {
		comment, _ := cmd.Flags().GetString("comment")
		form.Comment = &comment
	}
	return form
}

var addReviewCmd = &cobra.Command{
	Use:   "add [church-id]",
	Short: "Review a church (rating 1-5)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		churchID, err := parseChurchID(args[0])
		if err != nil {
			return err
		}

		form := reviewForm(cmd)
		if err := validateForm(&form); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		api := newClient()
		review, err := api.AddReview(ctx, churchID, &form)
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Review by %s saved (%.1f/5)", review.UserName, review.Rating)
		return refreshChurch(ctx, out, api, churchID)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(addReviewCmd)

	addReviewCmd.Flags().String("name", "", "your name")
	addReviewCmd.Flags().Float64("rating", 0, "rating from 1 to 5")
	addReviewCmd.Flags().String("comment", "", "optional comment")
	_ = addReviewCmd.MarkFlagRequired("name")
}
