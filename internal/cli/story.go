package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/triply/triply-be/internal/client"
	"github.com/triply/triply-be/internal/models"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage travel stories",
}

var storyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your travel stories",
	RunE:    runStoryList,
}

var storyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a travel story",
	RunE:  runStoryAdd,
}

var storyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a travel story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoryDelete,
}

var storyFavCmd = &cobra.Command{
	Use:   "favourite <id>",
	Short: "Toggle a story's favourite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoryFavourite,
}

var storySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search your stories by text",
	Args:  cobra.ExactArgs(1),
	RunE:  runStorySearch,
}

var storyFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter stories by visited-date range",
	RunE:  runStoryFilter,
}

var (
	storyTitle     string
	storyText      string
	storyLocations []string
	storyImageURL  string
	storyDate      string
	storyFavOff    bool
	filterStart    string
	filterEnd      string
)

func init() {
	storyAddCmd.Flags().StringVar(&storyTitle, "title", "", "Story title")
	storyAddCmd.Flags().StringVar(&storyText, "story", "", "Narrative text")
	storyAddCmd.Flags().StringSliceVar(&storyLocations, "location", nil, "Visited location (repeatable)")
	storyAddCmd.Flags().StringVar(&storyImageURL, "image-url", "", "Image URL (from 'triply upload')")
	storyAddCmd.Flags().StringVar(&storyDate, "date", "", "Visited date (YYYY-MM-DD)")

	storyFavCmd.Flags().BoolVar(&storyFavOff, "off", false, "Clear the favourite flag instead of setting it")

	storyFilterCmd.Flags().StringVar(&filterStart, "start", "", "Start date (YYYY-MM-DD)")
	storyFilterCmd.Flags().StringVar(&filterEnd, "end", "", "End date (YYYY-MM-DD)")

	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyAddCmd)
	storyCmd.AddCommand(storyDeleteCmd)
	storyCmd.AddCommand(storyFavCmd)
	storyCmd.AddCommand(storySearchCmd)
	storyCmd.AddCommand(storyFilterCmd)
}

func parseDayMillis(value string) (int64, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.UnixMilli(), nil
}

func printStories(stories []models.TravelStory) {
	if len(stories) == 0 {
		fmt.Println("No stories.")
		return
	}
	for _, s := range stories {
		marker := " "
		if s.IsFavourite {
			marker = "*"
		}
		date := time.UnixMilli(s.VisitedDate).Format("2006-01-02")
		fmt.Printf("%s %s  %s  %s  [%s]\n", marker, s.ID, date, s.Title, strings.Join(s.VisitedLocation, ", "))
	}
}

func runStoryList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	stories, err := c.Stories()
	if err != nil {
		return err
	}
	printStories(stories)
	return nil
}

func runStoryAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	if storyTitle == "" || storyText == "" || len(storyLocations) == 0 || storyImageURL == "" || storyDate == "" {
		return fmt.Errorf("--title, --story, --location, --image-url and --date are all required")
	}
	millis, err := parseDayMillis(storyDate)
	if err != nil {
		return err
	}

	created, err := c.AddStory(models.TravelStory{
		Title:           storyTitle,
		Story:           storyText,
		VisitedLocation: storyLocations,
		ImageURL:        storyImageURL,
		VisitedDate:     millis,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Story added: %s\n", created.ID)
	return nil
}

func runStoryDelete(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	if err := c.DeleteStory(args[0]); err != nil {
		return err
	}
	fmt.Println("Story deleted.")
	return nil
}

func runStoryFavourite(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	updated, err := c.SetFavourite(args[0], !storyFavOff)
	if err != nil {
		return err
	}
	state := "favourite"
	if !updated.IsFavourite {
		state = "not a favourite"
	}
	fmt.Printf("%q is now %s.\n", updated.Title, state)
	return nil
}

func runStorySearch(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	stories, err := c.Search(args[0])
	if err != nil {
		return err
	}
	printStories(stories)
	return nil
}

func runStoryFilter(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	if filterStart == "" || filterEnd == "" {
		return fmt.Errorf("--start and --end are required")
	}
	start, err := parseDayMillis(filterStart)
	if err != nil {
		return err
	}
	end, err := parseDayMillis(filterEnd)
	if err != nil {
		return err
	}
	// Make the end bound cover the whole day.
	end += int64(24*time.Hour/time.Millisecond) - 1

	stories, err := c.FilterByDate(start, end)
	if err != nil {
		return err
	}
	printStories(stories)
	return nil
}
