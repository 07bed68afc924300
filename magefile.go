//go:build mage

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "tschart"
	version = "1.0.0"
)

// Default target - build the binary
var Default = Build

// Build builds the tschart binary with version information
func Build() error {
	ldflags := fmt.Sprintf("-X 'github.com/ginjaninja78/timeseries-chart/cmd.Version=%s' -X 'github.com/ginjaninja78/timeseries-chart/cmd.BuildDate=%s'",
		version, time.Now().UTC().Format("2006-01-02"))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, ".")
}

// Clean removes build artifacts
func Clean() error {
	for _, path := range []string{binary, "coverage.out"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

// QA runs formatting, vet and the test suite
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.All)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	return sh.RunV("go", "test", "-coverprofile=coverage.out", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}
