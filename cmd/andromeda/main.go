// Command andromeda is the CLI front end for the kernel/evaluator,
// grounded on the teacher's cmd/ailang/main.go: a flag-based command
// dispatcher (run/repl/dump-signature) printing colored diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/zzmjohn/andromeda/internal/surface"
	"github.com/zzmjohn/andromeda/internal/toplevel"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	verboseFlag := flag.Int("verbose", 0, "verbosity level (no semantic effect)")
	helpFlag := flag.Bool("help", false, "show help")
	flag.Parse()

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("error"))
			os.Exit(1)
		}
		os.Exit(runFiles(flag.Args()[1:], *verboseFlag))

	case "repl":
		os.Exit(runRepl(*verboseFlag))

	case "dump-signature":
		os.Exit(runDumpSignature(flag.Args()[1:], *verboseFlag))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("andromeda"), "— reflective type-theory kernel and effect evaluator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  andromeda run <file.yaml>...     run desugared-program interchange files")
	fmt.Println("  andromeda repl                    start the interactive session")
	fmt.Println("  andromeda dump-signature [file]   print the declared signature as YAML")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --verbose <n>   verbosity level (no semantic effect)")
	fmt.Println("  --help          show this help message")
}

// runFiles loads and runs each file against one persistent driver
// session, in order — a later file sees everything an earlier one
// declared or bound, matching spec.md §6's "start-up files" plural.
func runFiles(paths []string, verbose int) int {
	d, err := toplevel.New(toplevel.Config{Verbose: verbose, StartupFiles: paths})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return 1
	}

	exit := 0
	for _, path := range paths {
		items, err := surface.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", red("error"), path, err)
			return 1
		}
		outcomes, runErr := d.Run(items)
		for _, oc := range outcomes {
			if printOutcome(oc) {
				exit = 1
			}
		}
		if runErr != nil {
			return 1
		}
	}
	return exit
}

func runDumpSignature(paths []string, verbose int) int {
	d, err := toplevel.New(toplevel.Config{Verbose: verbose, StartupFiles: paths})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return 1
	}
	for _, path := range paths {
		items, err := surface.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", red("error"), path, err)
			return 1
		}
		if _, runErr := d.Run(items); runErr != nil {
			return 1
		}
	}
	out, err := toplevel.DumpSignature(d.State.Sgn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		return 1
	}
	fmt.Print(string(out))
	return 0
}

// printOutcome prints oc.Report if present and reports whether it
// represents a failure the CLI's exit code should reflect.
func printOutcome(oc toplevel.Outcome) bool {
	if oc.Report == nil {
		return false
	}
	if oc.Fatal {
		fmt.Fprintf(os.Stderr, "%s %s\n", red("fatal:"), oc.Report.String())
		return true
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow("recovered:"), oc.Report.String())
	return true
}
