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
	chunksCommand := &cobra.Command{
		Use:   "chunks [image]",
		Short: "List every chunk in a PNG stream",
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

			sum, err := png.Inspect(data)
			if err != nil {
				logging.Error().Err(err).Msg("failed to walk chunk stream")
				os.Exit(1)
			}

			for _, c := range sum.Chunks {
				fmt.Printf("%s %s %s %8d  %s\n",
					color.BgBlue+color.White+color.Bold, c.Type, color.Reset,
					len(c.Data), c.PreviewHex())
			}
			fmt.Printf("%d chunks, %d bytes of compressed image data\n", len(sum.Chunks), sum.DataBytes)
		},
	}
	ViewerCommand.AddCommand(chunksCommand)
}
