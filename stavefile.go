//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
	"s": Serve,
}

// binaries maps each binary name to its main package.
var binaries = []struct {
	name string
	pkg  string
}{
	{"sentsplit", "./cmd/sentsplit"},
	{"sentsplit-bench", "./cmd/sentsplit-bench"},
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the sentsplit and sentsplit-bench binaries.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_CLI, Build_Bench)
	return nil
}

// Build_CLI compiles the sentsplit binary with version information.
func Build_CLI() error {
	st.Deps(Init)
	return buildBinary(binaries[0].name, binaries[0].pkg)
}

// Build_Bench compiles the sentsplit-bench binary.
func Build_Bench() error {
	st.Deps(Init)
	return buildBinary(binaries[1].name, binaries[1].pkg)
}

func buildBinary(name, pkg string) error {
	out := "bin/" + name

	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, pkg)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Serve builds and starts the HTTP server. SENTSPLIT_CONFIG selects a
// config file.
func Serve() error {
	st.Deps(Build_CLI)

	args := []string{"serve"}
	if path := os.Getenv("SENTSPLIT_CONFIG"); path != "" {
		args = append([]string{"--config", path}, args...)
	}
	return sh.RunV("./bin/sentsplit", args...)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode.
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{"bin/", "coverage.out", "coverage.html"}
	for _, b := range binaries {
		artifacts = append(artifacts, b.name)
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	for _, b := range binaries {
		src := "bin/" + b.name
		dst := bin + "/" + b.name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", b.name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", b.name, dst)
		}
	}
	return nil
}

// Bench namespace for benchmark-related targets.
type Bench st.Namespace

func corpusDir() string {
	if dir := os.Getenv("SENTSPLIT_CORPUS"); dir != "" {
		return dir
	}
	return "testdata/corpus"
}

// Run scores the default maximum length against the corpus in
// SENTSPLIT_CORPUS (default testdata/corpus).
func (Bench) Run() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/sentsplit-bench", "-corpus", corpusDir())
}

// Sweep scores a range of maximum lengths to compare boundary quality
// against hard cut rate.
func (Bench) Sweep() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/sentsplit-bench", "-corpus", corpusDir(), "-sweep")
}

// Go runs the Go micro-benchmarks for the splitter.
func (Bench) Go() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", ".")
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
