// Package main provides the CLI entrypoint for darr-lint.
//
// darr-lint statically checks structs carrying darr tags:
//   - Loads Go packages (go/types) without executing user code
//   - Parses every darr tag and validates dims, dtypes and names
//   - Optionally validates a YAML overlay file against the findings
//   - Prints findings and exits non-zero when any are errors
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"darray/internal/analyze"
	"darray/internal/diagnostic"
	"darray/internal/overlay"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("darr-lint", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "dump the classified classes in full detail")
	overlayPath := fs.String("overlay", "", "validate a YAML overlay file against the loaded classes")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: darr-lint [-dump] [-overlay file.yaml] [packages]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	report, diags, err := analyze.NewChecker().Check(patterns...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "darr-lint:", err)
		return 2
	}

	if *overlayPath != "" {
		diags.Merge(checkOverlay(*overlayPath, report))
	}

	for _, d := range diags.All() {
		fmt.Printf("%s: %s\n", d.Severity, d)
	}

	if *dump {
		dumpReport(report)
	} else {
		for _, ci := range report.Classes {
			fmt.Print(ci)
		}
	}

	if diags.HasErrors() {
		return 1
	}

	return 0
}

// checkOverlay validates the overlay file itself and cross-checks its
// class entries against the classes the loader found.
func checkOverlay(path string, report *analyze.Report) diagnostic.Diagnostics {
	f, err := overlay.LoadFile(path)
	if err != nil {
		var res diagnostic.Diagnostics
		res.AddError("overlay_unreadable", err.Error(), "", "")

		return res
	}

	res := overlay.Validate(f)

	for _, co := range f.Classes {
		if report.Class(lastSegment(co.Class)) == nil {
			res.AddWarning("class_not_found",
				fmt.Sprintf("class %q matches nothing in the loaded packages", co.Class), co.Class, "")
		}
	}

	return *res
}

func dumpReport(report *analyze.Report) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Dump(report)
}

func lastSegment(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}

	return s
}
