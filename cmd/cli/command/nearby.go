package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dondi-c/church-finder/cmd/cli/command/client"
	"github.com/dondi-c/church-finder/internal/google"
	"github.com/dondi-c/church-finder/internal/mapview"
	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

// one idle cycle resolves every result one after the other
const nearbyTimeout = 2 * time.Minute

// churchResolver finds or creates the church behind a place over REST
type churchResolver struct {
	api *client.HTTPClient
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func seedFromPlace(p mapview.Place) *dto.ChurchSeed {
	seed := &dto.ChurchSeed{
		Name:     p.Name,
		Vicinity: p.Vicinity,
		Lat:      formatFloat(p.Location.Lat),
		Lng:      formatFloat(p.Location.Lng),
	}
	if p.Rating != nil {
		seed.Rating = formatFloat(*p.Rating)
	}
	return seed
}

func (r churchResolver) Resolve(ctx context.Context, p mapview.Place) (*mapview.Church, error) {
	detail, err := r.api.GetChurch(ctx, p.PlaceID, seedFromPlace(p))
	if err != nil {
		return nil, err
	}
	church := &mapview.Church{ID: detail.ID}
	if detail.Denomination != nil {
		church.Denomination = *detail.Denomination
	}
	return church, nil
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List churches in the map area around a location",
	Long: `Centers the map on --lat/--lng, searches the visible area for churches
and prints one line per marker. Use --denomination to filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		zoom, _ := cmd.Flags().GetInt("zoom")
		denomination, _ := cmd.Flags().GetString("denomination")

		ctx, cancel := context.WithTimeout(cmd.Context(), nearbyTimeout)
		defer cancel()

		api := newClient()
		key, err := api.MapsKey(ctx)
		if err != nil {
			return fmt.Errorf("failed to load map: %w", err)
		}

		placesMap := mapview.NewPlacesMap(google.NewClient(google.Options{MapsAPIKey: key}))
		if err := placesMap.Create(mapview.LatLng{Lat: lat, Lng: lng}, zoom); err != nil {
			return err
		}

		controller := mapview.NewController(placesMap, churchResolver{api: api}, newLogger())
		controller.SetDenominationFilter(denomination)

		markers, err := controller.OnIdle(ctx)
		if err != nil {
			return fmt.Errorf("failed to search churches: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(markers) == 0 {
			fmt.Fprintln(out, "No churches found in this area.")
			return nil
		}
		for _, m := range markers {
			denom := "-"
			if m.Church != nil && m.Church.Denomination != "" {
				denom = m.Church.Denomination
			}
			fmt.Fprintf(out, "%-28s %-40s %-16s %s\n", m.Place.PlaceID, m.Place.Name, denom, m.Place.Vicinity)
		}
		fmt.Fprintf(out, "\n%d church(es). Run \"churchfinder church show <place-id>\" for details.\n", len(markers))
		return nil
	},
}

var denominationsCmd = &cobra.Command{
	Use:   "denominations",
	Short: "List the denominations available as filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		list, err := newClient().ListDenominations(ctx)
		if err != nil {
			return fmt.Errorf("failed to load denominations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No denominations recorded yet.")
			return nil
		}
		for _, d := range list {
			fmt.Fprintln(out, d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(denominationsCmd)

	nearbyCmd.Flags().Float64("lat", 0, "latitude of the map center")
	nearbyCmd.Flags().Float64("lng", 0, "longitude of the map center")
	nearbyCmd.Flags().Int("zoom", 14, "map zoom level (0-21)")
	nearbyCmd.Flags().String("denomination", "", "only show churches of this denomination")
	_ = nearbyCmd.MarkFlagRequired("lat")
	_ = nearbyCmd.MarkFlagRequired("lng")
}
