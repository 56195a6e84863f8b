package viewer

import (
	"fmt"
	"os"

	"git.handmade.network/hmn/pngview/src/config"
	"git.handmade.network/hmn/pngview/src/logging"
	"git.handmade.network/hmn/pngview/src/render"
	"git.handmade.network/hmn/pngview/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	var width int

	viewCommand := &cobra.Command{
		Use:   "view [image]",
		Short: "Draw a PNG in the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			if len(args) < 1 {
				fmt.Printf("You must provide an image to view.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			img, err := decodeInput(args[0])
			if err != nil {
				logging.Error().Err(err).Msg("failed to decode image")
				os.Exit(1)
			}

			maxWidth := utils.OrDefault(width, config.Config.PreviewWidth)
			err = render.WriteANSI(os.Stdout, render.ToNRGBA(&img.Pixels), maxWidth)
			if err != nil {
				logging.Error().Err(err).Msg("failed to draw image")
				os.Exit(1)
			}
		},
	}
	viewCommand.Flags().IntVar(&width, "width", 0, "max output width in terminal cells")
	ViewerCommand.AddCommand(viewCommand)
}
