package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine oscillator with linear attack and release
type tone struct {
	freq    float64
	phase   float64
	rate    beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
}

func newTone(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(duration)
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   total,
		attack:  min(rate.N(attack), total),
		release: min(rate.N(release), total),
	}
}

func (t *tone) gain() float64 {
	g := 1.0
	if t.attack > 0 && t.pos < t.attack {
		g = float64(t.pos) / float64(t.attack)
	}
	if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
		g = math.Min(g, float64(remaining)/float64(t.release))
	}
	return g
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		v := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// note is one step of a chime
type note struct {
	freq     float64
	duration time.Duration
}

// chime returns the two-step motif, rising for morph-in and falling for morph-out
func chime(rising bool) []note {
	low := note{freq: 659.25, duration: 90 * time.Millisecond}   // E5
	high := note{freq: 987.77, duration: 160 * time.Millisecond} // B5
	if rising {
		return []note{low, high}
	}
	return []note{{freq: high.freq, duration: low.duration}, {freq: low.freq, duration: high.duration}}
}

// synth builds the streamer for a chime at the given linear volume
func synth(notes []note, vol float64, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newTone(n.freq, n.duration, 5*time.Millisecond, n.duration/2, rate))
	}
	return newVolume(beep.Seq(parts...), vol)
}

// newVolume wraps s in a log2 volume; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
