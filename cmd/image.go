package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var imageOut string

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image <url>",
	Short: "Download artwork from the server",
	Long: `Download an image such as a poster or background. The URL may be absolute
or a server path like /library/metadata/123/thumb/1700000000.`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().StringVarP(&imageOut, "out", "o", "", "file to write the image to")
	_ = imageCmd.MarkFlagRequired("out")
}

func runImage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	image, err := plexClient.GetImageData(ctx, token, args[0])
	if err != nil {
		return err
	}

	if err := os.WriteFile(imageOut, image.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	logger.Info().
		Str("file", imageOut).
		Str("content_type", image.ContentType).
		Int("bytes", len(image.Data)).
		Msg("Image saved")

	return nil
}
