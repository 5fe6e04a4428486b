// Command standing inspects punishment records and catalogs offline.
package main

import (
	"fmt"
	"io"
	"os"
)

var version = "dev"

type command func(args []string, out io.Writer) error

var commands = map[string]command{
	"effective":   cmdEffective,
	"status":      cmdStatus,
	"catalog":     cmdCatalog,
	"deadletters": cmdDeadLetters,
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("standing %s\n", version)
		return
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err := cmd(os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: standing <command> [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  effective <record.json>         Show the effective state of one punishment record")
	fmt.Fprintln(w, "  status <records.json>           Aggregate a JSON array of records into standing")
	fmt.Fprintln(w, "  catalog validate <file.yaml>    Validate a punishment type catalog file")
	fmt.Fprintln(w, "  deadletters [--path file]       List events that exhausted their retries")
	fmt.Fprintln(w, "  version                         Show version")
	fmt.Fprintln(w, "  help                            Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common Options:")
	fmt.Fprintln(w, "  --catalog <file.yaml>   Custom punishment types to merge with the built-ins")
	fmt.Fprintln(w, "  --schemas <dir>         JSON schema directory (default configs/schemas)")
	fmt.Fprintln(w, "  --at <RFC3339>          Evaluate as of this instant instead of now")
	fmt.Fprintln(w, "  --json                  Print JSON instead of a table")
}
