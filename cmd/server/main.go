package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"
	"liyu1981.xyz/iot-heartbeat-service/pkg/common"
)

var Version string = "unknown"

func main() {
	doMain(os.Args)
}

func doMain(args []string) {
	var envFile string

	app := cli.NewApp()
	app.Name = "iot-heartbeat-service"
	app.Usage = "IoT device heartbeat monitor"
	app.Version = Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "env-file",
			Usage:       "Load environment variables from `FILE` before reading the configuration.",
			Value:       ".env",
			Destination: &envFile,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "server",
			Usage:  "Run the HTTP and gRPC servers",
			Action: cmdServer,
		},
		{
			Name:   "migrate",
			Usage:  "Create the database schema and exit",
			Action: cmdMigrate,
		},
	}
	app.Action = cmdServer

	app.Before = func(c *cli.Context) error {
		if err := common.LoadEnvFile(envFile); err != nil {
			return cli.NewExitError(
				fmt.Sprintf("error loading %s: %s", envFile, err),
				1)
		}
		return nil
	}

	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

func cmdServer(c *cli.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("error loading configuration: %s", err), 1)
	}
	return runServer(cfg)
}

func cmdMigrate(c *cli.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("error loading configuration: %s", err), 1)
	}
	return runMigrate(cfg)
}
