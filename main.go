package main

import (
	_ "embed"
	"strings"

	"github.com/flytaly/mdsite/cmd"
)

//go:embed version
var version string

func main() {
	cmd.Execute(strings.TrimSpace(version))
}
