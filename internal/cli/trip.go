package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/triply/triply-be/internal/client"
	"github.com/triply/triply-be/internal/models"
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage future trips",
}

var tripListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your planned trips, soonest first",
	RunE:    runTripList,
}

var tripAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Plan a future trip",
	RunE:  runTripAdd,
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a planned trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripDelete,
}

var (
	tripTitle         string
	tripDestination   string
	tripStart         string
	tripEnd           string
	tripDescription   string
	tripBudget        float64
	tripAccommodation string
	tripActivities    []string
)

func init() {
	tripAddCmd.Flags().StringVar(&tripTitle, "title", "", "Trip title")
	tripAddCmd.Flags().StringVar(&tripDestination, "destination", "", "Destination")
	tripAddCmd.Flags().StringVar(&tripStart, "start", "", "Start date (YYYY-MM-DD)")
	tripAddCmd.Flags().StringVar(&tripEnd, "end", "", "End date (YYYY-MM-DD)")
	tripAddCmd.Flags().StringVar(&tripDescription, "description", "", "Description")
	tripAddCmd.Flags().Float64Var(&tripBudget, "budget", 0, "Budget")
	tripAddCmd.Flags().StringVar(&tripAccommodation, "accommodation", "", "Accommodation")
	tripAddCmd.Flags().StringSliceVar(&tripActivities, "activity", nil, "Planned activity (repeatable)")

	tripCmd.AddCommand(tripListCmd)
	tripCmd.AddCommand(tripAddCmd)
	tripCmd.AddCommand(tripDeleteCmd)
}

func runTripList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	trips, err := c.Trips()
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Println("No planned trips.")
		return nil
	}
	for _, t := range trips {
		start := time.UnixMilli(t.StartDate).Format("2006-01-02")
		end := time.UnixMilli(t.EndDate).Format("2006-01-02")
		fmt.Printf("%s  %s to %s  %s (%s)\n", t.ID, start, end, t.Title, t.Destination)
	}
	return nil
}

func runTripAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	if tripTitle == "" || tripDestination == "" || tripStart == "" || tripEnd == "" {
		return fmt.Errorf("--title, --destination, --start and --end are all required")
	}
	start, err := parseDayMillis(tripStart)
	if err != nil {
		return err
	}
	end, err := parseDayMillis(tripEnd)
	if err != nil {
		return err
	}

	created, err := c.AddTrip(models.FutureTrip{
		Title:         tripTitle,
		Destination:   tripDestination,
		StartDate:     start,
		EndDate:       end,
		Description:   tripDescription,
		Budget:        tripBudget,
		Accommodation: tripAccommodation,
		Activities:    tripActivities,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Trip added: %s\n", created.ID)
	return nil
}

func runTripDelete(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	if err := c.DeleteTrip(args[0]); err != nil {
		return err
	}
	fmt.Println("Trip deleted.")
	return nil
}
