package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Y       bool `cli:"name=y aliases=yaml desc='read and write documents as yaml'"`
	Sets    bool `cli:"name=sets desc='encode homogeneous string/number arrays as set types'"`
	Color   bool `cli:"name=color desc='color type tags in output'"`
	Compact bool `cli:"name=c aliases=compact desc='compact single-line output'"`

	Out string

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(_ *cli.Context, v string) (any, error) {
	cfg.Out = v
	return v, nil
}

// input reads the document to convert: the file named by the first
// argument, or stdin.
func (cfg *MainConfig) input(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

// output returns the destination writer and a close function.
func (cfg *MainConfig) output() (io.Writer, func() error, error) {
	if cfg.Out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// colorEnabled: explicit -color wins; otherwise color only a terminal.
func (cfg *MainConfig) colorEnabled() bool {
	if cfg.Color {
		return true
	}
	return cfg.Out == "" && isatty.IsTerminal(os.Stdout.Fd())
}
