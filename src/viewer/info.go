package viewer

import (
	"fmt"
	"os"

	color "git.handmade.network/hmn/pngview/src/ansicolor"
	"git.handmade.network/hmn/pngview/src/logging"
	"git.handmade.network/hmn/pngview/src/png"
	"github.com/spf13/cobra"
)

func init() {
	infoCommand := &cobra.Command{
		Use:   "info [image]",
		Short: "Print the header and metadata of a PNG",
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			if len(args) < 1 {
				fmt.Printf("You must provide an image.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			data, err := readInput(args[0])
			if err != nil {
				logging.Error().Err(err).Msg("failed to read image")
				os.Exit(1)
			}

			// Inspection skips pixel reconstruction, so this works on
			// images the decoder would turn away, interlaced ones
			// included.
			sum, err := png.Inspect(data)
			if err != nil {
				logging.Error().Err(err).Msg("failed to read image")
				os.Exit(1)
			}

			if sum.Header != nil {
				hdr := sum.Header
				title("Image header")
				fmt.Printf("  [Size] %dx%d\n", hdr.Width, hdr.Height)
				fmt.Printf("  [Bit depth] %d\n", hdr.BitDepth)
				fmt.Printf("  [Color type] %d (%s)\n", byte(hdr.ColorType), hdr.ColorType)
				fmt.Printf("  [Interlace method] %d\n", hdr.InterlaceMethod)
				fmt.Printf("  [Compressed data] %d bytes\n", sum.DataBytes)
			} else {
				fmt.Printf("The stream contains no image header.\n")
			}

			if len(sum.Texts) > 0 {
				title("Textual data")
				for _, text := range sum.Texts {
					fmt.Printf("  [%s] %s\n", text.Keyword, text.Text)
				}
			}

			if sum.ModTime != nil {
				title("Last modification time")
				fmt.Printf("  %s\n", sum.ModTime)
			}
		},
	}
	ViewerCommand.AddCommand(infoCommand)
}

func title(s string) {
	fmt.Printf("%s%s%s\n", color.Green, s, color.Reset)
}
