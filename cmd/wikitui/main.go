// Command wikitui is a non-interactive demonstration shell around the
// core: it exercises search, fetch, parse, render, viewport, and page
// store exactly as an interactive terminal UI would, without actually
// drawing one.
package main

import (
	"strconv"

	"github.com/alecthomas/kong"
	"gitlab.com/tozd/go/cli"
	"gitlab.com/tozd/go/errors"
)

func main() {
	var config Config
	cli.Run(&config, kong.Vars{
		"defaultEndpoint": DefaultEndpoint,
		"defaultLanguage": DefaultLanguage,
		"defaultWidth":    strconv.Itoa(DefaultWidth),
	}, func(ctx *kong.Context) errors.E {
		return errors.WithStack(ctx.Run(&config.Globals))
	})
}
