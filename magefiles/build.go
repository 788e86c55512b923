//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for assocrows using Mage.
//
// Usage:
//
//	mage build            Compile the assocrows binary to bin/
//	mage install          Install assocrows to GOPATH/bin
//	mage clean            Remove build artifacts
//	mage lint             Run golangci-lint
//	mage test:all         Run all tests
//	mage test:unit        Run tests with the race detector
//	mage test:cover       Write a coverage profile to bin/coverage.out
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "assocrows"
	binaryDir  = "bin"
	cmdDir     = "./cmd/assocrows"
	versionVar = "github.com/mesh-intelligence/assocrows/internal/cli.Version"
)

// Build compiles the assocrows binary to bin/. ASSOCROWS_VERSION, when set,
// is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("ASSOCROWS_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
