package viewer

import (
	"fmt"
	"io"
	"os"

	"git.handmade.network/hmn/pngview/src/logging"
	"git.handmade.network/hmn/pngview/src/perf"
	"git.handmade.network/hmn/pngview/src/png"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool
var showPerf bool

var ViewerCommand = &cobra.Command{
	Use:   "pngview",
	Short: "Decode, inspect and convert PNG images",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	ViewerCommand.PersistentFlags().BoolVar(&verbose, "verbose", false, "log every chunk and decode stage")
	ViewerCommand.PersistentFlags().BoolVar(&showPerf, "perf", false, "print stage timings after decoding")
}

// readInput loads the named file, or standard input when the name is "-".
func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// decodeInput runs a full decode with the global logger attached, plus
// stage timings when --perf asked for them. Timings print even on a failed
// decode; seeing which stage died is half the point.
func decodeInput(name string) (*png.Image, error) {
	data, err := readInput(name)
	if err != nil {
		return nil, err
	}

	var p *perf.DecodePerf
	if showPerf {
		p = perf.MakeNewDecodePerf(name)
	}
	logger := logging.With().Str("image", name).Logger()
	img, err := png.DecodeWithOptions(data, png.DecodeOptions{
		Logger: &logger,
		Perf:   p,
	})
	if p != nil {
		p.EndDecode()
		printPerf(p)
	}
	return img, err
}

func printPerf(p *perf.DecodePerf) {
	fmt.Printf("Decoded %s in %.3fms\n", p.Input, float64(p.End.Sub(p.Start).Nanoseconds())/1000/1000)
	for i := range p.Blocks {
		b := &p.Blocks[i]
		fmt.Printf("  %9.3fms  %-7s  %s (%.3fms)\n", p.MsFromStart(b), b.Category, b.Description, b.DurationMs())
	}
}
