// main.go - Main entry point for keysynth

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m █▄▀ █▀▀ █▄█ █▀ █▄█ █▄ █ ▀█▀ █ █\033[0m\n\033[38;2;255;140;147m █ █ ██▄  █  ▄█  █  █ ▀█  █  █▀█\033[0m")
	fmt.Println("\nA real-time wavetable keyboard synthesizer.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	cfg := mustParseConfig()
	if cfg.ShowVersion {
		printFeatures()
		os.Exit(0)
	}

	boilerPlate()

	keymap := DefaultKeyMap()
	if cfg.KeymapPath != "" {
		if err := LoadKeyMapFile(keymap, cfg.KeymapPath); err != nil {
			fmt.Printf("Failed to load key map: %v\n", err)
			os.Exit(1)
		}
	}

	osc := NewWavetableOscillator(cfg.SampleRate, NewSineTable(cfg.TableSize), NewFrequencyControl(), float32(cfg.Gain))
	fmt.Printf("Output: %d Hz, %d channel, %d-entry table, gain %.2f\n", osc.SampleRate(), osc.Channels(), cfg.TableSize, osc.Gain())
	fmt.Printf("Key map: %d bindings\n", keymap.Len())

	player, err := NewOtoPlayer(osc.SampleRate())
	if err != nil {
		fmt.Printf("Failed to initialize sound: %v\n", err)
		os.Exit(1)
	}
	player.SetupPlayer(osc)
	player.Start()

	seq := NewSequencer(osc.Frequency(), keymap, cfg.Step)
	controller := NewKeyboardController(osc.Frequency(), keymap, seq)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if cfg.Window {
		err = runWindow(ctx, cfg, controller)
	} else {
		err = runTerminal(ctx, cfg, controller)
	}

	stop()
	seq.Stop()
	player.Close()

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// runTerminal plays from the raw-mode terminal until Esc, Ctrl-C or a signal.
func runTerminal(ctx context.Context, cfg Config, controller *KeyboardController) error {
	host := NewTerminalHost(cfg.Poll)
	if err := host.Start(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer host.Stop()

	out := NewTerminalOutput(os.Stdout)
	out.Println("Press ESC to exit")
	controller.SetNoteHandler(out.ShowNote)

	err := runController(ctx, cfg, controller, host.Events(), nil)
	out.Println()
	out.Disable()
	return err
}

// runWindow plays from an ebiten window. The window loop must own the main
// goroutine, so the controller runs alongside it and closes the window when
// it returns.
func runWindow(ctx context.Context, cfg Config, controller *KeyboardController) error {
	win, err := NewKeyboardWindow()
	if err != nil {
		return fmt.Errorf("failed to initialize window: %w", err)
	}
	controller.SetNoteHandler(win.ShowNote)
	win.SetPasteHandler(func(text string) {
		controller.PlayText(ctx, text)
	})

	result := make(chan error, 1)
	go func() {
		result <- runController(ctx, cfg, controller, win.Events(), win.Close)
	}()

	if err := win.Run(); err != nil {
		<-result
		return err
	}
	return <-result
}

// runController drives controller from events, with the optional -play
// melody started first. onExit runs once the input loop has stopped.
func runController(ctx context.Context, cfg Config, controller *KeyboardController, events <-chan Key, onExit func()) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if onExit != nil {
			defer onExit()
		}
		return controller.Run(gctx, events)
	})
	controller.PlayText(gctx, cfg.Play)

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
