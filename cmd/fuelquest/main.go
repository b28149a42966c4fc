// FuelQuest is a narrated nutrition lesson for young athletes, played as
// five missions in the terminal.
//
// Usage:
//
//	fuelquest [--verbose] [--quiet] [--voice] [--lesson file.yaml]
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/fuelquest/internal/coach"
	"github.com/hammamikhairi/fuelquest/internal/config"
	"github.com/hammamikhairi/fuelquest/internal/conversation"
	"github.com/hammamikhairi/fuelquest/internal/display"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/engine"
	"github.com/hammamikhairi/fuelquest/internal/gpt"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/mission"
	"github.com/hammamikhairi/fuelquest/internal/nudge"
	"github.com/hammamikhairi/fuelquest/internal/speech"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

type flags struct {
	verbose  bool
	quiet    bool
	logFile  string
	noSpeech bool
	noAI     bool
	voice    bool
	lesson   string
	cacheDir string
}

func main() {
	_ = godotenv.Load()

	var f flags
	root := &cobra.Command{
		Use:          "fuelquest",
		Short:        "Fuel smart, level up: a nutrition quest in your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	fl := root.Flags()
	fl.BoolVar(&f.verbose, "verbose", false, "enable verbose/debug logging")
	fl.BoolVar(&f.quiet, "quiet", false, "disable all logging")
	fl.StringVar(&f.logFile, "log-file", "", "file to write logs to (\"stderr\" logs to the console)")
	fl.BoolVar(&f.noSpeech, "no-speech", false, "disable speech and sound cues")
	fl.BoolVar(&f.noAI, "no-ai", false, "disable the coach model even if keys are set")
	fl.BoolVar(&f.voice, "voice", false, "enable push-to-talk input via local Whisper")
	fl.StringVar(&f.lesson, "lesson", "", "YAML file overriding the built-in lesson (hot-reloaded)")
	fl.StringVar(&f.cacheDir, "cache-dir", "", "directory for the persistent speech cache")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(parent context.Context, f flags) error {
	cfg, err := config.Read()
	if err != nil {
		return err
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.lesson != "" {
		cfg.LessonFile = f.lesson
	}
	if f.cacheDir != "" {
		cfg.CacheDir = f.cacheDir
	}

	logLevel := logger.LevelNormal
	if f.verbose {
		logLevel = logger.LevelVerbose
	}
	if f.quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default so the TUI stays clean.
	logOut, closeLog := openLogOutput(cfg.LogFile, os.Stderr)
	defer closeLog()

	// The whisper transcriber logs through the standard library.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	defer log.Sync()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// ── Lesson + state ──────────────────────────────────────────
	store := state.NewStore(log)
	catalog := lesson.NewCatalog(log)
	if cfg.LessonFile != "" {
		if err := catalog.LoadFile(cfg.LessonFile); err != nil {
			return err
		}
		go func() {
			if err := catalog.Watch(ctx, cfg.LessonFile); err != nil {
				log.Error("lesson: watch stopped: %v", err)
			}
		}()
	}

	// ── Language model ──────────────────────────────────────────
	model := chatModel(cfg, f.noAI, log)
	agent := gpt.NewAgent(model, log)
	personalizer := gpt.NewPersonalizer(model, catalog, log)

	// ── Speech ──────────────────────────────────────────────────
	var cues domain.CuePlayer = speech.NoCues{}
	noop := speech.NewNoOp(log)
	var voice coach.Voice = noop
	var mouth *speech.Mouth

	if !f.noSpeech {
		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			cues = speech.NewCueBoard(player, log)
			if chain := synthesizers(cfg, log); len(chain) > 0 {
				tts := speech.NewFallback(log, chain...)
				mouth = speech.NewMouth(tts, player, log,
					speech.WithCacheDir(cfg.CacheDir),
					speech.WithDiskWrite(cfg.DiskCache),
				)
				mouth.Start(ctx)
				mouth.Prefetch(ctx, speech.Fillers()...)
				voice = mouth
				log.Info("TTS enabled (voice=%s)", tts.Voice())
			} else {
				log.Info("TTS disabled: no voice backend available")
			}
		}
	}

	var listener domain.Listener = noop
	if f.voice {
		if _, err := os.Stat(cfg.WhisperModel); err != nil {
			return fmt.Errorf("whisper model not found at %s", cfg.WhisperModel)
		}
		listener = speech.NewEar(cfg.WhisperBin, cfg.WhisperModel, voice, log,
			speech.WithRecordWindow(cfg.RecordWindow))
		log.Info("voice input enabled (bin=%s, model=%s)", cfg.WhisperBin, cfg.WhisperModel)
	}

	// ── App ─────────────────────────────────────────────────────
	app := &cliApp{
		store:    store,
		catalog:  catalog,
		agent:    agent,
		parser:   conversation.NewKeywordParser(log),
		cues:     cues,
		voice:    voice,
		mouth:    mouth,
		listener: listener,
		voiceOn:  f.voice,
		voiceCh:  make(chan string, 1),
		timeout:  cfg.RequestTimeout,
		log:      log,
	}

	app.engine = engine.New(store, cues, log, engine.WithOnTransition(app.onTransition))
	app.ui = display.NewUI(app.status)

	text := conversation.NewCLINotifier(log, app.ui.Printf)
	app.notifier = speech.NewSpeakingNotifier(text, voice, log)
	app.coach = coach.New(personalizer, agent, store, text, voice, log,
		coach.WithRequestTimeout(cfg.RequestTimeout))
	defer app.coach.Close()

	app.dashboard = mission.NewDashboard(store, catalog, cues, log)
	app.meal = mission.NewMealBuilder(store, catalog, cues, log)
	app.battery = mission.NewBattery(store, cues, log)
	app.sugar = mission.NewSugarLab(store, catalog, cues, log)
	app.loadout = mission.NewLoadout(store, catalog, agent, cues, log)

	app.nudge = nudge.NewWatcher(app.engine, store, catalog, text, voice, log,
		nudge.WithIdleThreshold(cfg.NudgeAfter))
	go app.nudge.Run(ctx)

	fmt.Println(display.RenderBanner())
	if f.voice {
		fmt.Println(display.BannerStyle.Render("  Voice mode ON: type 'talk' to speak a command."))
	}
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		app.ui.WaitReady()
		app.run(ctx)
		app.ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := app.ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	return nil
}

// chatModel picks the coach backend: Claude first, then any
// OpenAI-compatible endpoint, else offline fallbacks.
func chatModel(cfg config.Config, disabled bool, log *logger.Logger) gpt.ChatModel {
	if disabled {
		log.Info("AI coach disabled by flag")
		return gpt.Offline{}
	}
	if cfg.HasClaude() {
		m, err := gpt.NewAnthropicModel(cfg.AnthropicKey, cfg.AnthropicModel, log)
		if err == nil {
			log.Info("AI coach enabled (anthropic)")
			return m
		}
		log.Error("anthropic init failed: %v", err)
	}
	if cfg.HasChat() {
		var opts []gpt.ClientOption
		if cfg.ChatModel != "" {
			opts = append(opts, gpt.WithModel(cfg.ChatModel))
		}
		log.Info("AI coach enabled (chat endpoint)")
		return gpt.NewClient(cfg.ChatEndpoint, cfg.ChatKey, log, opts...)
	}
	log.Info("AI coach disabled: set ANTHROPIC_API_KEY or GPT_CHAT_KEY and GPT_CHAT_ENDPOINT")
	return gpt.Offline{}
}

// synthesizers returns the configured voices in preference order.
func synthesizers(cfg config.Config, log *logger.Logger) []speech.Synthesizer {
	var chain []speech.Synthesizer
	if cfg.HasElevenLabs() {
		var opts []speech.ElevenOption
		if cfg.ElevenLabsVoice != "" {
			opts = append(opts, speech.WithElevenVoice(cfg.ElevenLabsVoice))
		}
		chain = append(chain, speech.NewElevenLabsClient(cfg.ElevenLabsKey, log, opts...))
	}
	if cfg.HasAzure() {
		chain = append(chain, speech.NewAzureClient(cfg.AzureSpeechKey, cfg.AzureSpeechRegion, log))
	}
	if local := speech.NewLocalVoice(cfg.EspeakBin, log); local.Available() {
		chain = append(chain, local)
	}
	return chain
}

// openLogOutput opens path for appending, creating its directory. An empty
// path or "stderr" means stderr. On failure it warns on stderr and falls
// back to it.
func openLogOutput(path string, stderr io.Writer) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return stderr, func() {}
	}
	fallback := func(err error) (io.Writer, func()) {
		fmt.Fprintf(stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fallback(err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fallback(err)
	}
	return file, func() { _ = file.Close() }
}
