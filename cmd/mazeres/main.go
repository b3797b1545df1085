package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/mazeres"
	"github.com/urfave/cli/v2"
)

const defaultDB = "mazeres.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func main() {
	app := cli.NewApp()

	app.Name = "mazeres"
	app.Usage = "3D maze screensaver bitmap resource utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MAZERES_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "decode",
			Usage:       "Decode a resource file to PNG",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "debug, d",
					Usage: "also write index, colormap and preview images",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m := mazeres.New(nil, newLogger(c))

				if err := m.DecodeFile(c.Args().First(), c.Bool("debug")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Convert an image back into a resource file",
			Description: "",
			ArgsUsage:   "IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m := mazeres.New(nil, newLogger(c))

				if err := m.EncodeFile(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Decode and catalog every resource under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := mazeres.NewResourceDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m := mazeres.New(db, newLogger(c))

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write the catalogued PNG for a CRC to a file",
			Description: "",
			ArgsUsage:   "CRC FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				crc, err := strconv.ParseUint(c.Args().First(), 16, 32)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := mazeres.NewResourceDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m := mazeres.New(db, newLogger(c))

				if err := m.ExportCRC(uint32(crc), c.Args().Get(1)); err != nil {
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
