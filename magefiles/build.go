//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the testbed binary into bin/.
func (Build) Engine() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/prism", "."), withStream())
	return err
}

// Builds the device inspection tool into bin/.
func (Build) Gfxinfo() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/gfxinfo", "./cmd/gfxinfo"), withStream())
	return err
}
