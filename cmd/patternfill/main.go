package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Fepozopo/patternfill/pkg/cli"
)

func main() {
	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	cfg.Apply()

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "render":
			if err := cli.RunRender(cfg, args[1:], os.Stderr); err != nil {
				if !errors.Is(err, flag.ErrHelp) {
					fmt.Fprintln(os.Stderr, err)
				}
				os.Exit(1)
			}
			return
		case "version", "-v", "--version":
			fmt.Println(cli.Version)
			return
		}
	}
	cli.RunCLI(cfg, args)
}
