package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bodgit/gemconv"
	"github.com/bodgit/gemconv/gem"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func loggers(c *cli.Context) (*log.Logger, *log.Logger) {
	report := log.New(os.Stdout, "", 0)
	if c.Bool("quiet") {
		report.SetOutput(io.Discard)
	}

	debug := log.New(io.Discard, "", log.LstdFlags)
	if c.Bool("verbose") {
		debug.SetOutput(os.Stderr)
	}

	return report, debug
}

// usage prints the help of the running command and fails with exit code 1.
func usage(c *cli.Context) error {
	_ = cli.ShowSubcommandHelp(c)
	return cli.Exit("", 1)
}

func convert(c *cli.Context) error {
	if c.NArg() != 2 {
		return usage(c)
	}

	report, debug := loggers(c)

	options := []func(*gemconv.Converter) error{
		gemconv.Format(c.String("format")),
		gemconv.Workers(c.Int("workers")),
	}
	if c.Bool("keep-going") {
		options = append(options, gemconv.KeepGoing())
	}

	conv, err := gemconv.New(report, options...)
	if err != nil {
		return cli.Exit(err, 1)
	}

	src, dst := c.Args().Get(0), c.Args().Get(1)
	debug.Printf("Converting \"%s\" into \"%s\" as %s with %d worker(s)\n", src, dst, c.String("format"), c.Int("workers"))

	if err := conv.Convert(src, dst); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() != 2 {
		return usage(c)
	}

	report, debug := loggers(c)
	src, dst := c.Args().Get(0), c.Args().Get(1)

	in, err := os.Open(src)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer in.Close()

	m, name, err := image.Decode(in)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", src, err), 1)
	}
	debug.Printf("Read %s image \"%s\", %dx%d\n", name, src, m.Bounds().Dx(), m.Bounds().Dy())

	out, err := os.Create(dst)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer out.Close()

	if err := gem.Encode(out, m); err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", dst, err), 1)
	}

	if err := out.Close(); err != nil {
		return cli.Exit(err, 1)
	}

	report.Printf("Encoded: %s -> %s\n", src, dst)

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		return usage(c)
	}

	for _, file := range c.Args().Slice() {
		f, err := os.Open(file)
		if err != nil {
			return cli.Exit(err, 1)
		}

		config, err := gem.DecodeConfig(f)
		f.Close()
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}

		fmt.Fprintf(c.App.Writer, "%s: %dx%d\n", file, config.Width, config.Height)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "gemconv"
	app.Usage = "PC-98 GEM image conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "do not report each converted file",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert every GEM file in a directory",
			ArgsUsage: "INPUT_DIR OUTPUT_DIR",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: gemconv.DefaultFormat,
					Usage: "output format (" + strings.Join(gemconv.Formats(), ", ") + ")",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 1,
					Usage: "number of files to convert concurrently",
				},
				&cli.BoolFlag{
					Name:  "keep-going",
					Usage: "continue past files that fail to convert",
				},
			},
			Action: convert,
		},
		{
			Name:      "encode",
			Usage:     "Encode an image as a GEM file",
			ArgsUsage: "IMAGE GEM_FILE",
			Action:    encode,
		},
		{
			Name:      "info",
			Usage:     "Print the dimensions of GEM files",
			ArgsUsage: "FILE...",
			Action:    info,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
