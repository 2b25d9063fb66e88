package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/zzmjohn/andromeda/internal/surface"
	"github.com/zzmjohn/andromeda/internal/toplevel"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// runRepl reads one YAML document per input (blank line terminates a
// block-style entry) and runs it through the toplevel driver against a
// persistent session, mirroring the teacher's internal/repl.REPL.Start
// loop with liner for line editing and history.
func runRepl(verbose int) int {
	d, err := toplevel.New(toplevel.Config{Verbose: verbose, Interactive: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return 1
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := filepath.Join(os.TempDir(), ".andromeda_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Println(bold("andromeda"), "— type a YAML top-level item, blank line to submit, Ctrl-D to quit")
	fmt.Println(dim("Each input is decoded as a YAML list of top-level items."))
	fmt.Println()

	for {
		input, err := readBlock(line, "andromeda> ")
		if err == io.EOF {
			fmt.Println(green("\ngoodbye"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		items, err := surface.Decode([]byte(input))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			continue
		}
		outcomes, runErr := d.Run(items)
		for _, oc := range outcomes {
			printOutcome(oc)
		}
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "%s session aborted after a fatal error\n", red("fatal:"))
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
	return 0
}

// readBlock reads lines from line until a blank one, returning the
// joined block (without the terminating blank line).
func readBlock(line *liner.State, prompt string) (string, error) {
	first, err := line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(first) == "" {
		return "", nil
	}
	lines := []string{first}
	for {
		next, err := line.Prompt("... ")
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(next) == "" {
			break
		}
		lines = append(lines, next)
	}
	return strings.Join(lines, "\n"), nil
}
