package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"game-studio/internal/commands"
	"game-studio/internal/config"
	"game-studio/internal/logger"
)

const editPrompt = "studio> "

// console tracks how much of the project console has been printed.
type console struct {
	log     *logger.Logger
	printed int
}

// flush prints the entries logged since the last flush. Must run on the event loop.
func (c *console) flush(w io.Writer, l *logger.Logger) {
	if l != c.log {
		c.log, c.printed = l, 0
	}
	if l == nil {
		return
	}
	for _, e := range l.Since(c.printed) {
		fmt.Fprintln(w, e.String())
	}
	c.printed = l.Len()
}

func runEdit(ctx context.Context, prefs config.Prefs, template string, in io.Reader, out io.Writer) error {
	a := start(ctx, prefs)
	studio := commands.NewStudio(ctx, a.session, a.ai, a.loop.Post, out)
	var seen console

	exec := func(line string) error {
		return a.loop.Do(ctx, func() {
			if err := studio.Handle(line); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			seen.flush(out, a.session.Console())
		})
	}
	if template != "" {
		if err := exec("cmd new " + template); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, editPrompt)
	for scanner.Scan() {
		if err := exec(scanner.Text()); err != nil {
			return err
		}
		fmt.Fprint(out, editPrompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
