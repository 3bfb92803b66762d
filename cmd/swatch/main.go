package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/swatch"
	"github.com/bodgit/swatch/pal"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const defaultDB = "swatch.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadPalette reads the palette either from the library, when --name is
// set, or from the palette file argument.
func loadPalette(c *cli.Context, file string) (*swatch.Palette, error) {
	if name := c.String("name"); name != "" {
		db, err := swatch.NewPaletteDB(c.String("db"))
		if err != nil {
			return nil, err
		}
		defer db.Close()

		return swatch.New(db, newLogger(c)).Palette(name)
	}
	return pal.DecodeFile(file)
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "swatch"
	app.Usage = "Palette swapping utility for 2D game assets"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SWATCH_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "apply",
			Usage:       "Apply a palette to an image",
			Description: "Reads the palette from FILE, or from the library with --name.",
			ArgsUsage:   "[FILE] INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "use a palette from the library",
				},
			},
			Action: func(c *cli.Context) error {
				args, want := c.Args().Slice(), 3
				if c.String("name") != "" {
					want = 2
				}
				if len(args) < want {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var file string
				if want == 3 {
					file, args = args[0], args[1:]
				}

				p, err := loadPalette(c, file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := decodeImage(args[0])
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				dest, err := swatch.Apply(m, p)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writePNG(args[1], dest); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "extract",
			Usage:       "Extract a base palette from an image",
			Description: "Writes an identity palette; edit the replacement colours to create a variant.",
			ArgsUsage:   "INPUT FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "colours",
					Aliases: []string{"n"},
					Value:   16,
					Usage:   "maximum number of colours to extract",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := decodeImage(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				p, err := swatch.Extract(m, c.Int("colours"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := pal.EncodeFile(c.Args().Get(1), p); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Recolour every image under a directory",
			Description: "Writes a PNG copy of each image next to the original with the suffix appended.",
			ArgsUsage:   "FILE DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "use a palette from the library",
				},
				&cli.StringFlag{
					Name:  "suffix",
					Value: "_swap",
					Usage: "suffix appended to output filenames",
				},
			},
			Action: func(c *cli.Context) error {
				args, want := c.Args().Slice(), 2
				if c.String("name") != "" {
					want = 1
				}
				if len(args) < want {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var file string
				if want == 2 {
					file, args = args[0], args[1:]
				}

				p, err := loadPalette(c, file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				s := swatch.New(nil, newLogger(c))
				if err := s.Batch(args[0], p, c.String("suffix")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "db",
			Usage: "Manage the palette library",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Store a palette file under a name",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						p, err := pal.DecodeFile(c.Args().Get(1))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						db, err := swatch.NewPaletteDB(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						if err := db.Put(c.Args().Get(0), p); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:      "export",
					Usage:     "Write a stored palette out as a palette file",
					ArgsUsage: "NAME FILE",
					Action: func(c *cli.Context) error {
						if c.NArg() < 2 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := swatch.NewPaletteDB(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						p, err := swatch.New(db, newLogger(c)).Palette(c.Args().Get(0))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						if err := pal.EncodeFile(c.Args().Get(1), p); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List the stored palettes",
					Action: func(c *cli.Context) error {
						db, err := swatch.NewPaletteDB(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						infos, err := db.List()
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						for _, i := range infos {
							fmt.Printf("%s\t%d colours\t%s\n", i.Name, i.Colours, i.CRC)
						}

						return nil
					},
				},
				{
					Name:      "rm",
					Usage:     "Remove a stored palette",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
						}

						db, err := swatch.NewPaletteDB(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						if err := db.Delete(c.Args().First()); err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
