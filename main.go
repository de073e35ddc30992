/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/testbed"
)

func main() {
	displayPath := flag.String("display", "assets/display.toml", "display configuration file")
	pipelinePath := flag.String("pipeline", "assets/pipeline.toml", "render pipeline file, watched for changes")
	envFile := flag.String("env", ".env", "dotenv file with PRISM_* overrides")
	flag.Parse()

	tb := testbed.NewTestGame(&engine.ApplicationConfig{
		Name:            "Prism Testbed",
		DisplayPath:     *displayPath,
		PipelinePath:    *pipelinePath,
		EnvFiles:        []string{*envFile},
		TargetFrameTime: time.Second / 60,
	})

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("failed to create the engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("failed to initialize the engine: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the loop; the device is released on this goroutine once Run returns
	go func() {
		<-sigCh
		e.Quit()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("engine stopped: %s", runErr)
	}
}
