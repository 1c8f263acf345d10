package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triply/triply-be/internal/client"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var serverCmd = &cobra.Command{
	Use:   "server <url>",
	Short: "Set the API server URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runServer,
}

func runUpload(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	imageURL, err := c.UploadImage(args[0])
	if err != nil {
		return err
	}
	fmt.Println(imageURL)
	return nil
}

func runServer(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	if err := c.SetServer(args[0]); err != nil {
		return err
	}
	fmt.Printf("Server set to %s\n", args[0])
	return nil
}
