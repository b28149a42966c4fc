package speech

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// ClipPlayer plays one WAV clip at a time. Player satisfies it.
type ClipPlayer interface {
	Play(wav []byte) error
	Stop()
}

// MouthOption configures the Mouth.
type MouthOption func(*Mouth)

// WithChunkSize sets the approximate max character count per TTS chunk.
// Longer text is split at sentence boundaries and synthesized in parallel.
func WithChunkSize(n int) MouthOption {
	return func(m *Mouth) { m.chunkSize = n }
}

// WithCacheDir sets the on-disk audio cache directory.
func WithCacheDir(dir string) MouthOption {
	return func(m *Mouth) { m.cacheDir = dir }
}

// WithDiskWrite controls whether new clips are written to the cache dir.
func WithDiskWrite(enabled bool) MouthOption {
	return func(m *Mouth) { m.diskWrite = enabled }
}

// WithOnFinished registers a callback run after a request has been played
// to the end. Interrupted requests do not trigger it.
func WithOnFinished(fn func(SpeechRequest)) MouthOption {
	return func(m *Mouth) { m.onFinished = fn }
}

// Mouth serializes speech output: queue -> chunk -> synthesize (parallel)
// -> play (sequential). Higher priority items are spoken first and only one
// thing speaks at a time.
type Mouth struct {
	tts        Synthesizer
	player     ClipPlayer
	log        *logger.Logger
	cache      *AudioCache
	chunkSize  int
	cacheDir   string
	diskWrite  bool
	onFinished func(SpeechRequest)

	notify chan struct{}

	mu       sync.Mutex
	queue    []SpeechRequest
	speaking bool
	epoch    uint64 // bumped by Interrupt; in-flight playback aborts on change
	last     string
}

// NewMouth creates a speech dispatcher.
func NewMouth(tts Synthesizer, player ClipPlayer, log *logger.Logger, opts ...MouthOption) *Mouth {
	m := &Mouth{
		tts:       tts,
		player:    player,
		log:       log,
		chunkSize: 200,
		diskWrite: true,
		notify:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = NewAudioCache(tts.Voice(), m.cacheDir, m.diskWrite, log)
	return m
}

// Say queues text at the given priority. Non-blocking. Anything at
// PriorityNormal or above flushes pending PriorityLow items.
func (m *Mouth) Say(text string, priority Priority) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	m.mu.Lock()
	if priority >= PriorityNormal {
		m.flushLowLocked()
	}
	m.queue = append(m.queue, SpeechRequest{Text: text, Priority: priority, QueuedAt: time.Now()})
	n := len(m.queue)
	m.mu.Unlock()

	m.log.Debug("mouth: queued (priority=%d, queue_len=%d): %s", priority, n, truncate(text, 60))
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *Mouth) flushLowLocked() {
	kept := m.queue[:0]
	for _, r := range m.queue {
		if r.Priority > PriorityLow {
			kept = append(kept, r)
		}
	}
	if dropped := len(m.queue) - len(kept); dropped > 0 {
		m.log.Debug("mouth: flushed %d low-priority items", dropped)
	}
	m.queue = kept
}

// Interrupt stops playback and clears the queue.
func (m *Mouth) Interrupt() {
	m.mu.Lock()
	m.queue = m.queue[:0]
	m.epoch++
	m.mu.Unlock()

	m.player.Stop()
	m.log.Debug("mouth: interrupted")
}

// Busy reports whether the mouth is speaking or has queued items.
func (m *Mouth) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking || len(m.queue) > 0
}

// LastSpoken returns the most recent fully spoken text.
func (m *Mouth) LastSpoken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Cache returns the audio cache.
func (m *Mouth) Cache() *AudioCache { return m.cache }

// Start runs the speech loop in a goroutine.
func (m *Mouth) Start(ctx context.Context) {
	go m.Run(ctx)
}

// Run processes the queue until ctx is cancelled.
func (m *Mouth) Run(ctx context.Context) {
	m.log.Info("mouth: started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info("mouth: stopped")
			return
		case <-m.notify:
			m.drain(ctx)
		}
	}
}

func (m *Mouth) drain(ctx context.Context) {
	for ctx.Err() == nil {
		req, epoch, ok := m.dequeue()
		if !ok {
			return
		}
		finished := m.speak(ctx, req, epoch)

		m.mu.Lock()
		m.speaking = false
		if finished {
			m.last = req.Text
		}
		m.mu.Unlock()

		if finished && m.onFinished != nil {
			m.onFinished(req)
		}
	}
}

// dequeue pops the highest priority item, oldest first within a priority.
func (m *Mouth) dequeue() (SpeechRequest, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return SpeechRequest{}, 0, false
	}
	best := 0
	for i, r := range m.queue {
		if r.Priority > m.queue[best].Priority {
			best = i
		}
	}
	req := m.queue[best]
	m.queue = append(m.queue[:best], m.queue[best+1:]...)
	m.speaking = true
	return req, m.epoch, true
}

func (m *Mouth) interrupted(epoch uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch != epoch
}

// speak synthesizes all chunks in parallel, then plays them in order.
// It reports whether every chunk was played.
func (m *Mouth) speak(ctx context.Context, req SpeechRequest, epoch uint64) bool {
	m.log.Debug("mouth: speaking (priority=%d, waited=%s): %s",
		req.Priority, time.Since(req.QueuedAt).Round(time.Millisecond), truncate(req.Text, 60))

	chunks := splitChunks(req.Text, m.chunkSize)
	clips := make([][]byte, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			clip, err := m.synthesize(gctx, chunk)
			if err != nil {
				m.log.Error("mouth: chunk %d synthesis failed: %v", i, err)
				return nil
			}
			clips[i] = clip
			return nil
		})
	}
	_ = g.Wait()

	complete := true
	for i, clip := range clips {
		if ctx.Err() != nil || m.interrupted(epoch) {
			m.log.Debug("mouth: aborting playback at chunk %d", i)
			return false
		}
		if clip == nil {
			complete = false
			continue
		}
		if err := m.player.Play(clip); err != nil {
			m.log.Error("mouth: chunk %d playback failed: %v", i, err)
			complete = false
		}
	}
	return complete && !m.interrupted(epoch)
}

func (m *Mouth) synthesize(ctx context.Context, text string) ([]byte, error) {
	if clip, ok := m.cache.Get(text); ok {
		return clip, nil
	}
	clip, err := m.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache.Put(text, clip)
	return clip, nil
}

// Prefetch synthesizes texts into the cache in the background so that a
// later Say starts immediately. Already cached chunks are skipped.
func (m *Mouth) Prefetch(ctx context.Context, texts ...string) {
	for _, text := range texts {
		for _, chunk := range splitChunks(strings.TrimSpace(text), m.chunkSize) {
			if chunk == "" || m.cache.Has(chunk) {
				continue
			}
			go func() {
				if _, err := m.synthesize(ctx, chunk); err != nil {
					m.log.Debug("mouth: prefetch failed: %v", err)
				}
			}()
		}
	}
}

// splitChunks groups sentences into chunks of about size characters.
func splitChunks(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if c := strings.TrimSpace(cur.String()); c != "" {
			chunks = append(chunks, c)
		}
		cur.Reset()
	}
	for _, s := range splitSentences(text) {
		if cur.Len() > 0 && cur.Len()+len(s) > size {
			flush()
		}
		cur.WriteString(s)
	}
	flush()
	return chunks
}

// splitSentences splits after . ! or ? keeping trailing whitespace with
// the sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
		out = append(out, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
