package speech

import (
	"math"
	"sync"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.CuePlayer = (*CueBoard)(nil)
	_ domain.CuePlayer = NoCues{}
)

type waveform int

const (
	sine waveform = iota
	square
	sawtooth
)

// tone is one oscillator note. The frequency sweeps exponentially from
// freq to endFreq and the gain decays exponentially from gain to 0.01.
type tone struct {
	at      time.Duration
	freq    float64
	endFreq float64
	dur     time.Duration
	wave    waveform
	gain    float64
}

const (
	cueGain  = 0.3
	cueFloor = 0.01
)

var cueScores = map[domain.Cue][]tone{
	domain.CueClick: {
		{freq: 800, dur: 50 * time.Millisecond, wave: sine},
	},
	domain.CueSuccess: {
		{freq: 523, dur: 100 * time.Millisecond, wave: sine},
		{at: 100 * time.Millisecond, freq: 659, dur: 150 * time.Millisecond, wave: sine},
	},
	domain.CueError: {
		{freq: 200, dur: 200 * time.Millisecond, wave: sawtooth},
	},
	domain.CueLevelUp: {
		{freq: 523, dur: 150 * time.Millisecond, wave: sine},
		{at: 80 * time.Millisecond, freq: 659, dur: 150 * time.Millisecond, wave: sine},
		{at: 160 * time.Millisecond, freq: 784, dur: 150 * time.Millisecond, wave: sine},
		{at: 240 * time.Millisecond, freq: 1047, dur: 150 * time.Millisecond, wave: sine},
	},
	domain.CueEquip: {
		{freq: 600, dur: 80 * time.Millisecond, wave: square},
		{at: 50 * time.Millisecond, freq: 900, dur: 100 * time.Millisecond, wave: square},
	},
	domain.CueTransition: {
		{freq: 400, endFreq: 100, dur: 150 * time.Millisecond, wave: sine, gain: 0.2},
	},
	domain.CueAlarm: {
		{freq: 400, dur: 150 * time.Millisecond, wave: sawtooth},
		{at: 150 * time.Millisecond, freq: 300, dur: 150 * time.Millisecond, wave: sawtooth},
		{at: 300 * time.Millisecond, freq: 400, dur: 150 * time.Millisecond, wave: sawtooth},
	},
}

// PCMSink plays device-format PCM without blocking. Player satisfies it.
type PCMSink interface {
	PlayAsync(pcm []byte)
}

// CueBoard renders every cue once and plays them fire-and-forget.
type CueBoard struct {
	sink PCMSink
	log  *logger.Logger

	once  sync.Once
	clips map[domain.Cue][]byte
}

// NewCueBoard creates a cue player on top of sink.
func NewCueBoard(sink PCMSink, log *logger.Logger) *CueBoard {
	return &CueBoard{sink: sink, log: log}
}

// Play fires a cue. Unknown cues are ignored.
func (b *CueBoard) Play(cue domain.Cue) {
	b.once.Do(b.render)
	pcm, ok := b.clips[cue]
	if !ok {
		b.log.Debug("cues: no sound for %s", cue)
		return
	}
	b.sink.PlayAsync(pcm)
}

func (b *CueBoard) render() {
	b.clips = make(map[domain.Cue][]byte, len(cueScores))
	for cue, tones := range cueScores {
		b.clips[cue] = fromSamples(mix(tones, SampleRate))
	}
	b.log.Debug("cues: rendered %d clips", len(b.clips))
}

// mix renders tones into one buffer of 16-bit sample values.
func mix(tones []tone, rate int) []float64 {
	var total time.Duration
	for _, t := range tones {
		total = max(total, t.at+t.dur)
	}
	out := make([]float64, samplesFor(total, rate))

	for _, t := range tones {
		start := samplesFor(t.at, rate)
		n := samplesFor(t.dur, rate)
		gain := t.gain
		if gain == 0 {
			gain = cueGain
		}
		end := t.endFreq
		if end == 0 {
			end = t.freq
		}

		var phase float64
		for i := 0; i < n && start+i < len(out); i++ {
			x := float64(i) / float64(n)
			freq := t.freq * math.Pow(end/t.freq, x)
			g := gain * math.Pow(cueFloor/gain, x)
			out[start+i] += g * oscillate(t.wave, phase) * math.MaxInt16
			phase += freq / float64(rate)
			phase -= math.Floor(phase)
		}
	}
	return out
}

func oscillate(w waveform, phase float64) float64 {
	switch w {
	case square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case sawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func samplesFor(d time.Duration, rate int) int {
	return int(d.Seconds() * float64(rate))
}

// NoCues discards cues. Used when audio is unavailable.
type NoCues struct{}

// Play does nothing.
func (NoCues) Play(domain.Cue) {}
