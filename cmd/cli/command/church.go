package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dondi-c/church-finder/cmd/cli/command/client"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

var churchCmd = &cobra.Command{
	Use:   "church",
	Short: "Church commands",
	Long:  `View a church and edit its contact details`,
}

// showChurch prints the info panel for a church, photo included. A photo
// lookup failure only degrades to the fallback text.
func showChurch(ctx context.Context, w io.Writer, api *client.HTTPClient, detail *dto.ChurchDetailResponse) {
	photoURL, err := api.ChurchPhoto(ctx, detail.Name)
	if err != nil && !errors.Is(err, client.ErrNoPhoto) {
		newLogger().Warn().Err(err).Str("church", detail.Name).Msg("photo lookup failed")
	}
	printChurch(w, detail, photoURL)
}

// refreshChurch re-fetches a church after a change so the output never shows
// a stale view.
func refreshChurch(ctx context.Context, w io.Writer, api *client.HTTPClient, id int64) error {
	item, err := api.FindChurchByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload church: %w", err)
	}
	detail, err := api.GetChurch(ctx, item.PlaceID, nil)
	if err != nil {
		return fmt.Errorf("failed to reload church: %w", err)
	}
	fmt.Fprintln(w)
	showChurch(ctx, w, api, detail)
	return nil
}

func parseChurchID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid church ID: %q", arg)
	}
	return id, nil
}

var showChurchCmd = &cobra.Command{
	Use:   "show [place-id]",
	Short: "Show a church with its service times and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		api := newClient()
		detail, err := api.GetChurch(ctx, args[0], nil)
		if err != nil {
			return fmt.Errorf("failed to load church: %w", err)
		}
		showChurch(ctx, cmd.OutOrStdout(), api, detail)
		return nil
	},
}

var editChurchCmd = &cobra.Command{
	Use:   "edit [church-id]",
	Short: "Edit phone, website, denomination or description",
	Long: `Edit the contact details of a church. Only the flags given are changed,
an empty value clears the field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseChurchID(args[0])
		if err != nil {
			return err
		}

		var form dto.UpdateChurchDTO
		changed := false
		for flag, dst := range map[string]**string{
			"phone":        &form.Phone,
			"website":      &form.Website,
			"denomination": &form.Denomination,
			"description":  &form.Description,
		} {
			if !cmd.Flags().Changed(flag) {
				continue
			}
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
			changed = true
		}
		if !changed {
			return errors.New("nothing to update, pass at least one of --phone, --website, --denomination, --description")
		}
		if err := validateForm(&form); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		api := newClient()
		updated, err := api.UpdateChurch(ctx, id, &form)
		if err != nil {
			return fmt.Errorf("failed to update church: %w", err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Church %d updated", updated.ID)
		return refreshChurch(ctx, out, api, updated.ID)
	},
}

func init() {
	rootCmd.AddCommand(churchCmd)
	churchCmd.AddCommand(showChurchCmd)
	churchCmd.AddCommand(editChurchCmd)

	editChurchCmd.Flags().String("phone", "", "phone number")
	editChurchCmd.Flags().String("website", "", "website URL")
	editChurchCmd.Flags().String("denomination", "", "denomination")
	editChurchCmd.Flags().String("description", "", "description")
}
