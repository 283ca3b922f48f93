package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/norlind/sitepress"
	"github.com/norlind/sitepress/views"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "sitepress",
		Usage:   "marketing-site engine with a blog, block editor, and page sections",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "path to a YAML config file (falls back to environment variables)",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address, overrides config",
					},
				},
				Action: serve,
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					fmt.Println(version)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	var cfg sitepress.SiteConfig
	if path := c.String("config"); path != "" {
		loaded, err := sitepress.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = sitepress.ConfigFromEnv()
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}

	app := sitepress.New(cfg, views.Funcs())
	defer app.Close()
	return app.Start()
}
