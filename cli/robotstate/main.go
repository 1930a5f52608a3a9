// Package main is the robotstate command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/robotstate/cli"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
