package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/theme"
)

const helloPost = `title: Hello, World
date: %s
tags: welcome
categories: General
description: The first post on this blog.

Welcome to your new blog. Edit or delete this post in ` + "`posts/hello.md`" + `.

` + "```go" + `
fmt.Println("hello")
` + "```" + `
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Name  string `short:"n" required:"" help:"Blog directory to create"`
	Force bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	fmt.Fprintf(out, "Initializing blog in %s\n", i.Name)

	cfgPath, _ := root.configPath(i.Name)
	if err := config.Init(cfgPath, filepath.Base(filepath.Clean(i.Name)), i.Force); err != nil {
		return err
	}
	fmt.Fprintf(out, "Writing configuration to %s\n", cfgPath)

	written, err := theme.Scaffold(filepath.Join(i.Name, "templates", theme.DefaultName), i.Force)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write default theme").Fatal().Build()
	}
	fmt.Fprintf(out, "Wrote %d theme files\n", len(written))

	for _, dir := range []string{"posts", "images"} {
		if err := os.MkdirAll(filepath.Join(i.Name, dir), 0o755); err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "create blog directory").
				WithContext("path", dir).Fatal().Build()
		}
	}
	hello := filepath.Join(i.Name, "posts", "hello.md")
	if _, err := os.Stat(hello); err != nil || i.Force {
		body := fmt.Sprintf(helloPost, nowFunc().Format("2006-01-02"))
		if err := os.WriteFile(hello, []byte(body), 0o644); err != nil {
			return foundation.WrapError(err, foundation.CategoryFileSystem, "write sample post").Fatal().Build()
		}
	}
	fmt.Fprintln(out, "initialized successfully")
	return nil
}
