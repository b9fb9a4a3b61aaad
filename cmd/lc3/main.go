package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/lc3run/lc3vm/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lc3", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "enable instruction-level trace logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "lc3 [image-file]...")
	}
	if err := fs.Parse(args); err != nil {
		return vm.ExitUsage
	}

	images := fs.Args()
	if len(images) < 1 {
		fs.Usage()
		return vm.ExitUsage
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	machine := vm.New(os.Stdout)
	machine.CPU.Log = log
	for _, path := range images {
		if err := vm.LoadImageFile(machine.Mem, path); err != nil {
			log.WithError(err).Debug("failed to load image")
			fmt.Fprintf(os.Stderr, "failed to load image: %s\n", path)
			return vm.ExitImageErr
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithField("images", images).Debug("starting LC-3 VM")
	code := machine.Run(ctx)
	log.WithField("exit", code).Debug("LC-3 VM stopped")
	return code
}

