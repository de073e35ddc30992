//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the files under assets/.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	_, err := executeCmd("go", withArgs("run", ".", "-display", "assets/display.toml", "-pipeline", "assets/pipeline.toml"), withStream())
	return err
}

// Runs the testbed headless on the Null backend.
func (Run) Headless() error {
	fmt.Println("Run engine (Null backend)...")
	_, err := executeCmd("go", withArgs("run", ".", "-display", "", "-pipeline", "assets/pipeline.toml"), withEnv("PRISM_BACKEND=Null"), withStream())
	return err
}

// Prints the resolved display config and the Vulkan devices.
func (Run) Gfxinfo() error {
	mg.Deps(Build.Gfxinfo)
	_, err := executeCmd("bin/gfxinfo", withStream())
	return err
}
