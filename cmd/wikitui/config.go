package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"gitlab.com/tozd/go/cli"
	"gitlab.com/tozd/go/errors"
	"gitlab.com/tozd/go/zerolog"

	"github.com/Builditluc/wiki-tui/language"
	"github.com/Builditluc/wiki-tui/page"
	"github.com/Builditluc/wiki-tui/render"
	"github.com/Builditluc/wiki-tui/store"
	"github.com/Builditluc/wiki-tui/viewport"
)

const (
	// DefaultEndpoint is the action API endpoint used when none is given.
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"
	// DefaultLanguage is the wiki language edition used when none is given.
	DefaultLanguage = "en"
	// DefaultWidth is the column width pages are rendered to when none is given.
	DefaultWidth = 80
)

// Globals describes top-level (global) flags shared by every command.
type Globals struct {
	zerolog.LoggingConfig `yaml:",inline"`

	Version kong.VersionFlag `help:"Show program's version and exit."                        short:"V" yaml:"-"`
	Config  cli.ConfigFlag   `help:"Load configuration from a JSON or YAML file." name:"config" placeholder:"PATH" short:"c" yaml:"-"`

	Endpoint string `default:"${defaultEndpoint}" help:"MediaWiki action API endpoint." placeholder:"URL"  yaml:"endpoint"`
	Language string `default:"${defaultLanguage}" help:"Wiki language edition code."   placeholder:"CODE" yaml:"language"`
}

// resolveLanguage resolves the configured language code, falling back to
// Unknown rather than failing the whole command over an unrecognised
// edition.
func (g *Globals) resolveLanguage() language.Language {
	lang, ok := language.FromCode(g.Language)
	if !ok {
		return language.Unknown
	}
	return lang
}

// Config provides the command-line interface's configuration. It doubles
// as Kong's command-line parser configuration.
type Config struct {
	Globals `yaml:"globals"`

	Search SearchCommand `cmd:"" default:"withargs" help:"Search a wiki for pages matching a query." yaml:"search"`
	Open   OpenCommand   `cmd:""                    help:"Fetch and render a single page to stdout." yaml:"open"`
}

// SearchCommand looks up pages by title/text and prints the hits.
type SearchCommand struct {
	Query string `arg:""                    help:"Search query."`
	Limit int    `default:"10" help:"Maximum number of hits to print." placeholder:"N"`
}

func (c *SearchCommand) Run(globals *Globals) errors.E {
	lang := globals.resolveLanguage()
	result, errE := page.Search(context.Background(), nil, globals.Endpoint, c.Query, c.Limit, 0)
	if errE != nil {
		return errE
	}

	fmt.Printf("%d hits for %q (%s)\n", result.TotalHits, c.Query, lang.Name())
	for _, hit := range result.Hits {
		fmt.Printf("  %-40s %s\n", hit.Title, hit.Snippet)
	}
	return nil
}

// OpenCommand fetches a single page, renders it, and prints one
// viewport's worth of lines, exercising builder, parser, renderer,
// viewport, and store together end to end.
type OpenCommand struct {
	Title  string `arg:""                   help:"Page title to fetch."`
	Width  int    `default:"${defaultWidth}" help:"Render width in terminal columns."        placeholder:"N"`
	Height int    `default:"40"               help:"Viewport height in terminal rows."        placeholder:"N"`
	Anchor string `                           help:"Section anchor to jump to after loading." placeholder:"ANCHOR"`
}

func (c *OpenCommand) Run(globals *Globals) errors.E {
	lang := globals.resolveLanguage()

	p, errE := page.NewBuilder(globals.Endpoint, lang).
		Title(c.Title).
		Redirects(true).
		Logger(globals.Logger).
		Fetch(context.Background())
	if errE != nil {
		return errE
	}

	cachePath, errE := store.DefaultPath()
	if errE != nil {
		return errE
	}
	s := store.New(cachePath, globals.Logger)
	s.Load()
	s.Display(p)
	defer s.SyncAndSave()

	view := viewport.New(p.Document, render.Render, c.Width, c.Height)
	if c.Anchor != "" {
		view.JumpToHeader(c.Anchor)
	}

	fmt.Printf("%s (%s)\n", p.Title, lang.Name())
	for _, line := range view.VisibleLines() {
		for _, word := range line {
			fmt.Print(word.Content, " ")
		}
		fmt.Println()
	}
	return nil
}
