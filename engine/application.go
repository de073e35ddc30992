package engine

import "time"

type ApplicationConfig struct {
	// The application name, used as the window title unless the display
	// config sets one.
	Name string
	// Display config file. Empty means defaults plus environment.
	DisplayPath string
	// Pipeline description loaded at startup and watched for changes.
	// Empty keeps the default forward pipeline.
	PipelinePath string
	// .env files loaded before the environment is read.
	EnvFiles []string
	// Frames shorter than this sleep for the remainder. Zero disables the
	// limiter.
	TargetFrameTime time.Duration
}
