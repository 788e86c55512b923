// Package main provides the assocrows CLI.
package main

import "github.com/mesh-intelligence/assocrows/internal/cli"

func main() {
	cli.Execute()
}
