package viewer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"git.handmade.network/hmn/pngview/src/logging"
	"git.handmade.network/hmn/pngview/src/oops"
	"git.handmade.network/hmn/pngview/src/render"
	"git.handmade.network/hmn/pngview/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	var output string
	var scale float64

	convertCommand := &cobra.Command{
		Use:   "convert [image]",
		Short: "Re-encode a PNG as .png, .qoi or .ppm",
		Long:  "Re-encode a PNG into the format named by the output file's extension: .png, .qoi or .ppm.",
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			if len(args) < 1 {
				fmt.Printf("You must provide an image to convert.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			img, err := decodeInput(args[0])
			if err != nil {
				logging.Error().Err(err).Msg("failed to decode image")
				os.Exit(1)
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				if args[0] == "-" {
					base = "image"
				}
				output = base + ".out.png"
			}

			nrgba := render.ToNRGBA(&img.Pixels)
			if scale != 1 {
				if scale <= 0 {
					fmt.Printf("The scale factor must be positive.\n\n")
					cmd.Usage()
					os.Exit(1)
				}
				b := nrgba.Bounds()
				nrgba = render.Scale(nrgba,
					int(math.Round(float64(b.Dx())*scale)),
					int(math.Round(float64(b.Dy())*scale)),
				)
			}

			f := utils.Must1(os.Create(output))
			switch strings.ToLower(filepath.Ext(output)) {
			case ".png":
				err = render.WritePNG(f, nrgba)
			case ".qoi":
				err = render.WriteQOI(f, nrgba)
			case ".ppm":
				err = render.WritePPM(f, nrgba)
			default:
				f.Close()
				os.Remove(output)
				fmt.Printf("Unsupported output format %q. Supported: .png, .qoi, .ppm.\n\n", filepath.Ext(output))
				cmd.Usage()
				os.Exit(1)
			}
			if err == nil {
				err = f.Close()
			}
			if err != nil {
				logging.Error().Err(oops.New(err, "failed to write %s", output)).Msg("conversion failed")
				os.Exit(1)
			}

			b := nrgba.Bounds()
			fmt.Printf("Wrote %s (%dx%d)\n", output, b.Dx(), b.Dy())
		},
	}
	convertCommand.Flags().StringVarP(&output, "output", "o", "", "output path; its extension picks the format")
	convertCommand.Flags().Float64Var(&scale, "scale", 1, "scale factor applied before encoding")
	ViewerCommand.AddCommand(convertCommand)
}
