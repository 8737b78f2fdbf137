package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/raanman3d/internal/config"
	"github.com/vovakirdan/raanman3d/internal/core"
	"github.com/vovakirdan/raanman3d/internal/device"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Terminal hosts pass interactive=true:
// without --log-file they log nowhere so the alt screen stays clean.
// The returned closer releases the log file, if any.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = os.Stderr
		closer           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadTuning loads the tuning file and applies --difficulty.
func loadTuning() (config.Tuning, error) {
	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		return config.Tuning{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.Tuning{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&tuning, preset)
	}
	return tuning, nil
}

// localProfile resolves the device tier for a local terminal, which has
// no touch screen to detect.
func localProfile() (device.Profile, error) {
	return device.ResolveProfile(flagDevice, device.Capabilities{UserAgent: os.Getenv("TERM_PROGRAM")})
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig assembles everything a terminal game needs from the flags.
func runtimeConfig(logger *log.Logger) (core.RuntimeConfig, error) {
	tuning, err := loadTuning()
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	profile, err := localProfile()
	if err != nil {
		return core.RuntimeConfig{}, err
	}

	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Tuning:   tuning,
		Profile:  profile,
		Logger:   logger,
	}, nil
}
