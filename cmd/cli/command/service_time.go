package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dondi-c/church-finder/internal/microservices/http-api/dto"
)

var serviceTimeCmd = &cobra.Command{
	Use:   "service-time",
	Short: "Service time commands",
}

var addServiceTimeCmd = &cobra.Command{
	Use:   "add [church-id]",
	Short: "Add a weekly service time to a church",
	Long: `Add a weekly service. --day is 0 (Sunday) to 6 (Saturday), times are
HH:MM in 24h format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		churchID, err := parseChurchID(args[0])
		if err != nil {
			return err
		}

		day, _ := cmd.Flags().GetInt("day")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")

		form := dto.CreateServiceTimeDTO{DayOfWeek: &day, StartTime: start, EndTime: end}
		if cmd.Flags().Changed("type") {
			v, _ := cmd.Flags().GetString("type")
			form.ServiceType = &v
		}
		if cmd.Flags().Changed("language") {
			v, _ := cmd.Flags().GetString("language")
			form.Language = &v
		}
		if err := validateForm(&form); err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		api := newClient()
		st, err := api.AddServiceTime(ctx, churchID, &form)
		if err != nil {
			return fmt.Errorf("failed to add service time: %w", err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Service time added: %s %s-%s", dayName(st.DayOfWeek), st.StartTime, st.EndTime)
		return refreshChurch(ctx, out, api, churchID)
	},
}

func init() {
	rootCmd.AddCommand(serviceTimeCmd)
	serviceTimeCmd.AddCommand(addServiceTimeCmd)

	addServiceTimeCmd.Flags().Int("day", 0, "day of week, 0 = Sunday")
	addServiceTimeCmd.Flags().String("start", "", "start time (HH:MM)")
	addServiceTimeCmd.Flags().String("end", "", "end time (HH:MM)")
	addServiceTimeCmd.Flags().String("type", "", "service type, e.g. Mass or Worship")
	addServiceTimeCmd.Flags().String("language", "", "language (server default is English)")
	_ = addServiceTimeCmd.MarkFlagRequired("day")
	_ = addServiceTimeCmd.MarkFlagRequired("start")
	_ = addServiceTimeCmd.MarkFlagRequired("end")
}
