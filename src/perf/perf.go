package perf

import (
	"time"
)

// DecodePerf tracks how long the stages of a single decode take. Blocks
// may nest; EndBlock closes the most recently opened one.
type DecodePerf struct {
	Input  string // whatever the caller wants to call the thing being decoded
	Start  time.Time
	End    time.Time
	Blocks []PerfBlock
}

func MakeNewDecodePerf(input string) *DecodePerf {
	return &DecodePerf{
		Start: time.Now(),
		Input: input,
	}
}

func (dp *DecodePerf) EndDecode() {
	for dp.EndBlock() {
	}
	dp.End = time.Now()
}

func (dp *DecodePerf) StartBlock(category, description string) {
	now := time.Now()
	block := PerfBlock{
		Start:       now,
		End:         time.Time{},
		Category:    category,
		Description: description,
	}
	dp.Blocks = append(dp.Blocks, block)
}

func (dp *DecodePerf) EndBlock() bool {
	for i := len(dp.Blocks) - 1; i >= 0; i -= 1 {
		if dp.Blocks[i].End.Equal(time.Time{}) {
			dp.Blocks[i].End = time.Now()
			return true
		}
	}
	return false
}

func (dp *DecodePerf) MsFromStart(block *PerfBlock) float64 {
	return float64(block.Start.Sub(dp.Start).Nanoseconds()) / 1000 / 1000
}

type PerfBlock struct {
	Start       time.Time
	End         time.Time
	Category    string
	Description string
}

func (pb *PerfBlock) Duration() time.Duration {
	return pb.End.Sub(pb.Start)
}

func (pb *PerfBlock) DurationMs() float64 {
	return float64(pb.Duration().Nanoseconds()) / 1000 / 1000
}
