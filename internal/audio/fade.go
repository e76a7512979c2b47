package audio

import "github.com/gopxl/beep"

// fadePortion is the share of a sound spent fading in, and again fading out.
const fadePortion = 0.25

// FadeVolume returns the gain at sample pos of a sound total samples long:
// a linear ramp up over the first quarter, full volume in the middle and a
// linear ramp down over the last quarter.
func FadeVolume(pos, total int) float64 {
	if total <= 0 || pos < 0 || pos >= total {
		return 0
	}
	edge := float64(total) * fadePortion
	p := float64(pos)
	switch {
	case p < edge:
		return p / edge
	case p > float64(total)-edge:
		return (float64(total) - p) / edge
	default:
		return 1
	}
}

// fade applies FadeVolume to a stream and cuts it after total samples.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func newFade(s beep.Streamer, total int) beep.Streamer {
	return &fade{streamer: s, total: total}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	if f.pos >= f.total {
		return 0, false
	}
	if remaining := f.total - f.pos; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := FadeVolume(f.pos, f.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
