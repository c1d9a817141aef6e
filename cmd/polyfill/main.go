package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/tomz197/polyfill/internal/config"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/viewer"
	"golang.org/x/term"
)

func main() {
	// Logs go to stderr; redirect it to keep the picture clean,
	// e.g. polyfill 2>polyfill.log
	logger, err := config.NewLogger("polyfill")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	width, err := config.GetEnvInt("CANVAS_WIDTH", fill.DefaultWidth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	height, err := config.GetEnvInt("CANVAS_HEIGHT", fill.DefaultHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	v := viewer.New(bufio.NewReader(os.Stdin), os.Stdout, viewer.Options{
		Engine:        fill.NewEngine(fill.Options{Width: width, Height: height, Logger: logger}),
		FillColor:     config.GetEnv("FILL_COLOR", fill.DefaultFillColor),
		BoundaryColor: config.GetEnv("BOUNDARY_COLOR", fill.DefaultBoundaryColor),
		Logger:        logger,
	})
	if err := v.Run(context.Background()); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "viewer error: %v\n", err)
		os.Exit(1)
	}
}
