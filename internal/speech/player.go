package speech

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Player owns the oto context. Speech clips play one at a time and can be
// cut off with Stop; cues overlap them on players of their own.
type Player struct {
	otoCtx *oto.Context
	log    *logger.Logger

	mu     sync.Mutex
	speech *oto.Player
}

// NewPlayer opens the default output device at the playback format.
func NewPlayer(log *logger.Logger) (*Player, error) {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("player: open audio device: %w", err)
	}
	<-ready
	log.Debug("player: device ready at %d Hz, %d channel(s)", SampleRate, ChannelCount)
	return &Player{otoCtx: otoCtx, log: log}, nil
}

// Play blocks until the WAV clip has finished or Stop is called. Clips in
// another rate or channel layout are converted first.
func (p *Player) Play(wav []byte) error {
	clip, err := DecodeWAV(wav)
	if err != nil {
		return err
	}
	pcm := clip.PCM
	if clip.Rate != SampleRate || clip.Channels != ChannelCount {
		p.log.Debug("player: resampling %d Hz x%d", clip.Rate, clip.Channels)
		pcm = Normalize(clip)
	}

	pl := p.otoCtx.NewPlayer(bytes.NewReader(pcm))
	p.setSpeech(pl)
	defer p.setSpeech(nil)

	pl.Play()
	waitDone(pl, 10*time.Millisecond)
	return pl.Close()
}

// PlayAsync starts device-format PCM and returns at once. Stop leaves it
// alone.
func (p *Player) PlayAsync(pcm []byte) {
	pl := p.otoCtx.NewPlayer(bytes.NewReader(pcm))
	pl.Play()
	go func() {
		waitDone(pl, 20*time.Millisecond)
		if err := pl.Close(); err != nil {
			p.log.Debug("player: close cue: %v", err)
		}
	}()
}

// Stop pauses the speech clip in flight, which lets Play return.
func (p *Player) Stop() {
	p.mu.Lock()
	pl := p.speech
	p.mu.Unlock()
	if pl == nil {
		return
	}
	pl.Pause()
	p.log.Debug("player: speech cut off")
}

func (p *Player) setSpeech(pl *oto.Player) {
	p.mu.Lock()
	p.speech = pl
	p.mu.Unlock()
}

func waitDone(pl *oto.Player, every time.Duration) {
	tick := time.NewTicker(every)
	defer tick.Stop()
	for pl.IsPlaying() {
		<-tick.C
	}
}
