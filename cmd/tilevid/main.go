package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/tilevid"
	"github.com/bodgit/tilevid/stream"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tilevid.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newTileVid(c *cli.Context) (*tilevid.TileVid, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return tilevid.New(c.String("db"), logger)
}

func main() {
	app := cli.NewApp()

	app.Name = "tilevid"
	app.Usage = "Tile video compression utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILEVID_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to stream cache database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode a playlist into a stream",
			Description: "",
			ArgsUsage:   "PLAYLIST OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newTileVid(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.EncodeFile(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and encode every playlist",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newTileVid(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Decode a stream and print each frame",
			Description: "",
			ArgsUsage:   "STREAM",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				frames, err := stream.Decode(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for i, frame := range frames {
					fmt.Printf("frame %d: offset (%d, %d), %d patterns\n", i, frame.X(), frame.Y(), len(frame.Tiles()))
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Validate a stream and print statistics",
			Description: "",
			ArgsUsage:   "STREAM",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				stats, err := stream.Stat(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%d bytes, %d frames\n", stats.Bytes, stats.Frames)
				fmt.Printf("%d updates: %d library writes, %d tilemap writes\n", stats.Updates, stats.LibWrites, stats.MapWrites)
				fmt.Printf("%d delays\n", stats.Delays)

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Store an encoded stream in the cache database",
			Description: "",
			ArgsUsage:   "STREAM",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newTileVid(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Import(c.Args().First()); err != nil {
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
