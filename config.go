// config.go - Command-line configuration

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

type Config struct {
	SampleRate  int
	TableSize   int
	Gain        float64
	Poll        time.Duration
	KeymapPath  string
	Window      bool
	Play        string
	Step        time.Duration
	ShowVersion bool
}

func DefaultConfig() Config {
	return Config{
		SampleRate: SAMPLE_RATE,
		TableSize:  DEFAULT_TABLE_SIZE,
		Gain:       DEFAULT_OUTPUT_GAIN,
		Poll:       DEFAULT_POLL_INTERVAL,
		Step:       DEFAULT_SEQUENCE_STEP,
	}
}

// ParseConfig parses args (without the program name). -h returns flag.ErrHelp
// after printing usage to usageOut.
func ParseConfig(name string, args []string, usageOut io.Writer) (Config, error) {
	cfg := DefaultConfig()

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "Output sample rate in Hz")
	flagSet.IntVar(&cfg.TableSize, "table", cfg.TableSize, "Wave table length in samples")
	flagSet.Float64Var(&cfg.Gain, "gain", cfg.Gain, "Output gain (0.0-1.0)")
	flagSet.DurationVar(&cfg.Poll, "poll", cfg.Poll, "Terminal input poll interval")
	flagSet.StringVar(&cfg.KeymapPath, "keymap", "", "Lua script overriding the key map")
	flagSet.BoolVar(&cfg.Window, "window", false, "Read keys from a window instead of the terminal")
	flagSet.StringVar(&cfg.Play, "play", "", "Play this text as a melody on startup")
	flagSet.DurationVar(&cfg.Step, "step", cfg.Step, "Melody step length")
	flagSet.BoolVar(&cfg.ShowVersion, "version", false, "Print version and compiled features")

	flagSet.Usage = func() {
		flagSet.SetOutput(usageOut)
		fmt.Fprintf(usageOut, "Usage: %s [-rate 44100] [-table 64] [-gain 0.3] [-keymap keys.lua] [-window] [-play text]\n", name)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if flagSet.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	case c.TableSize < MIN_TABLE_SIZE:
		return fmt.Errorf("table size must be at least %d, got %d", MIN_TABLE_SIZE, c.TableSize)
	case math.IsNaN(c.Gain) || c.Gain < 0 || c.Gain > MAX_SAMPLE:
		return fmt.Errorf("gain must be within 0.0-1.0, got %g", c.Gain)
	case c.Poll <= 0:
		return fmt.Errorf("poll interval must be positive, got %v", c.Poll)
	case c.Step <= 0:
		return fmt.Errorf("step must be positive, got %v", c.Step)
	}
	return nil
}

func mustParseConfig() Config {
	cfg, err := ParseConfig(os.Args[0], os.Args[1:], os.Stdout)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
