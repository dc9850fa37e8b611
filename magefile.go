//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "tck"
	binDir     = "bin"
	versionPkg = "github.com/dkoosis/tck/internal/version"
)

// Default target - build the binary
var Default = Build

// Build builds the tck binary with version information.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binDir+"/"+binaryName, "./cmd/tck")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binDir)
}

// QA runs format, vet and the test suite, then the kit itself.
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.All, Run)
}

// Run builds the binary and runs the conformance checks that must pass: the
// default std run over the general list and the serializer over the
// serializable list.
func Run() error {
	mg.Deps(Build)
	bin := binDir + "/" + binaryName
	for _, args := range [][]string{
		{"run", "--format", "llm"},
		{"run", "-i", "serializer", "--list", "serializable", "--format", "llm"},
	} {
		out, err := sh.Output(bin, args...)
		fmt.Println(out)
		if err != nil {
			return fmt.Errorf("tck %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

func ldflags() string {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	tag, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		tag = "dev"
	}
	return strings.Join([]string{
		"-X " + versionPkg + ".Version=" + tag,
		"-X " + versionPkg + ".CommitHash=" + commit,
		"-X " + versionPkg + ".BuildDate=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
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
		return fmt.Errorf("files need formatting:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}
