//go:generate glslc ../../shaders/shader.vert -o ../../shaders/vert.spv
//go:generate glslc ../../shaders/shader.frag -o ../../shaders/frag.spv

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/llap/llap/internal/config"
	"github.com/llap/llap/internal/diag"
	"github.com/llap/llap/internal/frame"
	"github.com/llap/llap/internal/program"
)

func main() {
	// SDL and the Vulkan surface must stay on the thread that created them.
	runtime.LockOSThread()

	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		config.Usage(os.Stdout)
		return
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Fprintln(os.Stderr, "\nUse --help or -h for option list.")
		os.Exit(1)
	}

	logger := diag.Default()
	app := program.New(cfg, logger)

	err = app.Run(frame.Hooks{
		OnInit: func() error {
			logger.Messagef("Drawing triangle")
			return nil
		},
		OnCleanup: func() error {
			logger.Messagef("Shutting down")
			return nil
		},
	})
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
