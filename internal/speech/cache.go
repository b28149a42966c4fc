package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// AudioCache keeps synthesized clips in memory and, optionally, on disk.
// Keys are sha256(voice + ":" + text), so switching voices never replays
// audio from the old one.
//
// The disk directory is always read when set; writeDisk only controls
// whether new clips are persisted. Lesson scripts repeat across runs, so a
// warm disk cache makes narration start instantly.
type AudioCache struct {
	voice     string
	dir       string
	writeDisk bool
	log       *logger.Logger

	mu    sync.RWMutex
	clips map[string][]byte

	hits   atomic.Int64
	misses atomic.Int64
}

// NewAudioCache creates a cache. An empty dir disables the disk layer.
func NewAudioCache(voice, dir string, writeDisk bool, log *logger.Logger) *AudioCache {
	if dir != "" && writeDisk {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("cache: creating %s: %v", dir, err)
		}
	}
	return &AudioCache{
		voice:     voice,
		dir:       dir,
		writeDisk: writeDisk,
		log:       log,
		clips:     make(map[string][]byte),
	}
}

// Get returns the clip for text from memory or disk.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.key(text)

	c.mu.RLock()
	clip, ok := c.clips[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return clip, true
	}

	if c.dir != "" {
		if clip, err := os.ReadFile(c.path(key)); err == nil {
			c.mu.Lock()
			c.clips[key] = clip
			c.mu.Unlock()
			c.hits.Add(1)
			c.log.Debug("cache: disk hit for %s", truncate(text, 40))
			return clip, true
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Put stores a clip.
func (c *AudioCache) Put(text string, clip []byte) {
	key := c.key(text)

	c.mu.Lock()
	c.clips[key] = clip
	c.mu.Unlock()

	if c.dir == "" || !c.writeDisk {
		return
	}
	if err := os.WriteFile(c.path(key), clip, 0o644); err != nil {
		c.log.Error("cache: writing %s: %v", key[:12], err)
	}
}

// Has reports whether a clip for text is cached without counting a hit.
func (c *AudioCache) Has(text string) bool {
	key := c.key(text)

	c.mu.RLock()
	_, ok := c.clips[key]
	c.mu.RUnlock()
	if ok || c.dir == "" {
		return ok
	}
	_, err := os.Stat(c.path(key))
	return err == nil
}

// Len returns the number of clips in memory.
func (c *AudioCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clips)
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *AudioCache) key(text string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) path(key string) string {
	return filepath.Join(c.dir, key+".wav")
}
