package main

import (
	"io"
	"log"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bodgit/nextimg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const defaultTransparent = "$e3"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func imageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "pal",
			EnvVars: []string{"NEXTIMG_PAL"},
			Usage:   "palette to use in conversion",
		},
		&cli.BoolFlag{
			Name:  "4",
			Usage: "pack two pixels per byte",
		},
	}
}

func main() {
	_ = godotenv.Load()

	app := cli.NewApp()

	app.Name = "nextimg"
	app.Usage = "Next engine image and palette converter"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "palette",
			Usage:       "Convert a palette to a NIP file",
			Description: "Reads a NIP or JASC-PAL palette, or derives the default RRRGGGBB palette with -d, and writes FILE with a .nip extension.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "default",
					Aliases: []string{"d"},
					Usage:   "derive the default RRRGGGBB palette",
				},
				&cli.BoolFlag{
					Name:  "9",
					Usage: "write 9-bit colors",
				},
				&cli.StringFlag{
					Name:    "transparent",
					EnvVars: []string{"NEXTIMG_TRANSPARENT"},
					Value:   defaultTransparent,
					Usage:   "transparency index, decimal or $hex",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				transparent, err := nextimg.ParseIndex(c.String("transparent"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				n := nextimg.New(newLogger(c))

				if err := n.ConvertPalette(c.Args().First(), nextimg.PaletteOptions{
					Default:     c.Bool("default"),
					Extended:    c.Bool("9"),
					Transparent: transparent,
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "image",
			Usage:       "Convert an image to a NIM file",
			Description: "Decodes FILE and writes it as an indexed NIM bitmap with a .nim extension next to it.",
			ArgsUsage:   "FILE",
			Flags:       imageFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				n := nextimg.New(newLogger(c))

				if err := n.ConvertImage(c.Args().First(), nextimg.ImageOptions{
					Palette: c.String("pal"),
					FourBit: c.Bool("4"),
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image below a directory",
			Description: "Walks DIRECTORY and converts every supported image to a sibling NIM bitmap.",
			ArgsUsage:   "DIRECTORY",
			Flags:       imageFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				n := nextimg.New(newLogger(c))

				if err := n.Scan(c.Args().First(), nextimg.ImageOptions{
					Palette: c.String("pal"),
					FourBit: c.Bool("4"),
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
