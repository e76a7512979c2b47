package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// clip is a synthesized sound with its natural length.
type clip struct {
	length time.Duration
	make   func(rate beep.SampleRate, d time.Duration) beep.Streamer
}

var clips = map[string]clip{
	"click": {length: 60 * time.Millisecond, make: clickSound},
	"cheer": {length: 1500 * time.Millisecond, make: cheerSound},
	"boo":   {length: 1500 * time.Millisecond, make: booSound},
}

// clickSound is a short high blip.
func clickSound(rate beep.SampleRate, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, 1200)
	if err != nil {
		return generators.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// cheerSound is crowd noise over a rising major chord.
func cheerSound(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Mix(
		newVolume(newNoise(rate, d), 0.35),
		newVolume(newSweep(rate, d, 392, 523), 0.25),
		newVolume(newSweep(rate, d, 494, 659), 0.2),
	)
}

// booSound is crowd noise over a falling low tone.
func booSound(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return beep.Mix(
		newVolume(newNoise(rate, d), 0.3),
		newVolume(newSweep(rate, d, 180, 110), 0.4),
	)
}

// sweep is a sine whose frequency glides linearly from one pitch to another.
type sweep struct {
	from, to float64
	phase    float64
	pos      int
	total    int
	rate     beep.SampleRate
}

func newSweep(rate beep.SampleRate, d time.Duration, from, to float64) beep.Streamer {
	return &sweep{from: from, to: to, total: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise for a fixed number of samples.
type noise struct {
	pos   int
	total int
}

func newNoise(rate beep.SampleRate, d time.Duration) beep.Streamer {
	return &noise{total: rate.N(d)}
}

func (w *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.pos >= w.total {
			return i, i > 0
		}
		val := rand.Float64()*2 - 1
		samples[i][0] = val
		samples[i][1] = val
		w.pos++
	}
	return len(samples), true
}

func (w *noise) Err() error { return nil }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
