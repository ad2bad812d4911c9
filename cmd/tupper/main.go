package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/tupper"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newApp builds the command. Program output goes to stdout and diagnostics
// to stderr.
func newApp(stdout, stderr io.Writer) *cli.App {
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)

	// -v is taken by --verbose.
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := cli.NewApp()
	app.Writer = stdout
	app.Version = "0.1.0"
	app.Name = "tupper"
	app.Usage = "Plot text using Tupper's self-referential formula."
	app.UsageText = "1) tupper [options] TEXT\n" +
		/*      */ "   2) tupper [options] -k K"
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "size,s",
			Usage: "Font `SIZE` in pixels.",
			Value: 7,
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "Write the plot of the formula to `PATH`. The format follows the extension. If not provided, the plot will not be saved.",
		},
		cli.BoolFlag{
			Name:  "verbose,v",
			Usage: "Print the k value and its number of digits.",
		},
		cli.StringFlag{
			Name:  "k",
			Usage: "Plot an existing `K` instead of rendering text.",
		},
		cli.BoolFlag{
			Name:  "preview,p",
			Usage: "Print the plotted window as braille symbols.",
		},
		cli.BoolFlag{
			Name:  "check",
			Usage: "Verify that the formula reproduces the rendered text, or the grid encoded by -k.",
		},
		cli.StringFlag{
			Name:  "config,c",
			Usage: "Read defaults from the YAML file at `PATH`.",
		},
	}
	app.Action = func(c *cli.Context) error {
		verbose := c.Bool("verbose")
		if verbose {
			log = log.Level(zerolog.DebugLevel)
		}

		cfg := tupper.DefaultConfig()
		if path := c.String("config"); path != "" {
			var err error
			if cfg, err = tupper.LoadConfig(path); err != nil {
				return err
			}
			log.Debug().Str("path", path).Msg("loaded config")
		}
		if c.IsSet("size") {
			cfg.Size = c.Int("size")
		}

		var (
			k   *big.Int
			err error
		)
		if s := c.String("k"); s != "" {
			k, err = parseConstant(s, c.Bool("check"), log)
		} else {
			k, err = renderText(stdout, c.Args().First(), cfg.Size, c.Bool("check"), verbose, log)
		}
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(stdout, "k = %s (# digits: %d)\n", k, tupper.Digits(k))
		}

		if c.Bool("preview") {
			cols, lines := terminalSize(log)
			enc := tupper.NewBrailleEncoder(stdout, tupper.WithFit(cols, lines-1))
			if err := enc.Encode(tupper.Evaluate(k)); err != nil {
				return err
			}
		}

		if path := c.String("output"); path != "" {
			opts, err := cfg.PlotOpts()
			if err != nil {
				return err
			}
			if err := tupper.RenderFormula(k, path, opts...); err != nil {
				return err
			}
			log.Debug().Str("path", path).Msg("saved plot")
		}
		return nil
	}
	return app
}

// parseConstant reads k from the command line. With check set, k must
// decode to a grid that the formula plots back.
func parseConstant(s string, check bool, log zerolog.Logger) (*big.Int, error) {
	k, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid k %q", s)
	}
	grid, err := tupper.Decode(k)
	if err != nil {
		if check {
			return nil, err
		}
		log.Warn().Err(err).Msg("k does not encode a grid")
		return k, nil
	}
	if check {
		if err := tupper.Verify(grid, k); err != nil {
			return nil, err
		}
		log.Info().Msg("formula reproduces the grid encoded by k")
	}
	return k, nil
}

// renderText rasterises text, prints the grid and returns its k.
func renderText(stdout io.Writer, text string, size int, check, verbose bool, log zerolog.Logger) (*big.Int, error) {
	if text == "" {
		return nil, errors.New("missing TEXT argument")
	}
	grid, k, err := tupper.RenderText(text, size)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(stdout, grid.String())
	log.Debug().Int("pixels", grid.Count()).Int("size", size).Msg("rendered text")

	if verbose {
		fmt.Fprintln(stdout, "\n---")
	}
	if check {
		if err := tupper.Verify(grid, k); err != nil {
			return nil, err
		}
		log.Info().Msg("formula reproduces the rendered text")
	}
	return k, nil
}

// terminalSize returns the size of the terminal attached to stderr, or 80x25
// if there is none.
func terminalSize(log zerolog.Logger) (cols, lines int) {
	cols, lines, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || cols == 0 || lines == 0 {
		log.Debug().Err(err).Msg("no terminal size, using 80x25")
		return 80, 25 // Small, but a pretty standard default
	}
	return cols, lines
}
