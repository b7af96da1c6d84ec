// sectionpdf exports the sections of a web page as a paginated PDF.
//
// Usage:
//
//	sectionpdf export [options] <url|file.html>
//	sectionpdf info <file.pdf>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	sectionpdf "github.com/porticus-lab/go-section-pdf"
	"github.com/porticus-lab/go-section-pdf/internal/pdfinfo"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		if err := runExport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`sectionpdf - export web page sections as a paginated PDF

Usage:
  sectionpdf export [options] <url|file.html>
  sectionpdf info <file.pdf>

Commands:
  export    Capture the page's sections and compose them into a PDF
  info      Display version, page count, and media boxes of a PDF

Export options:
  -o <dir>          Output directory (default: current directory)
  -q <1-5>          Capture quality scale (default: 2)
  -s <selector>     CSS selector for sections (default: "section")
  -hide <a,b,...>   Selectors to hide during capture
                    (default: .export-button,.nav-toggle,.scroll-progress)
  -base <name>      Filename base; output is <name>_<date>.pdf (default: Resume)
  -timeout <sec>    Export timeout in seconds (default: 60)
  -no-sandbox       Disable the Chrome sandbox (needed when running as root)
  -download-browser Download a Chromium binary if none is installed
  -v                Verbose logging to stderr

Examples:
  sectionpdf export https://example.com
  sectionpdf export -q 3 -s "main > section" -o out/ resume/index.html
  sectionpdf info Resume_2026-08-30.pdf
`)
}

// runExport implements the "export" command.
func runExport(args []string) error {
	var (
		outDir   = "."
		target   string
		extraOps []sectionpdf.Option
		verbose  bool
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			i++
			if i >= len(args) {
				return fmt.Errorf("-o requires an argument")
			}
			outDir = args[i]
		case "-q":
			i++
			if i >= len(args) {
				return fmt.Errorf("-q requires an argument")
			}
			q, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid quality %q", args[i])
			}
			extraOps = append(extraOps, sectionpdf.WithQuality(q))
		case "-s":
			i++
			if i >= len(args) {
				return fmt.Errorf("-s requires an argument")
			}
			extraOps = append(extraOps, sectionpdf.WithSectionSelector(args[i]))
		case "-hide":
			i++
			if i >= len(args) {
				return fmt.Errorf("-hide requires an argument")
			}
			extraOps = append(extraOps, sectionpdf.WithHideSelectors(strings.Split(args[i], ",")...))
		case "-base":
			i++
			if i >= len(args) {
				return fmt.Errorf("-base requires an argument")
			}
			extraOps = append(extraOps, sectionpdf.WithFilenameBase(args[i]))
		case "-timeout":
			i++
			if i >= len(args) {
				return fmt.Errorf("-timeout requires an argument")
			}
			sec, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid timeout %q", args[i])
			}
			extraOps = append(extraOps, sectionpdf.WithTimeout(time.Duration(sec)*time.Second))
		case "-no-sandbox":
			extraOps = append(extraOps, sectionpdf.WithNoSandbox())
		case "-download-browser":
			extraOps = append(extraOps, sectionpdf.WithAutoDownload())
		case "-v":
			verbose = true
		default:
			if strings.HasPrefix(args[i], "-") {
				return fmt.Errorf("unknown option: %s", args[i])
			}
			target = args[i]
		}
	}

	if target == "" {
		return fmt.Errorf("no target specified")
	}
	if verbose {
		extraOps = append(extraOps, sectionpdf.WithLogger(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)))
	}

	e, err := sectionpdf.New(extraOps...)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := context.Background()
	var res *sectionpdf.Result
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		res, err = e.GenerateURL(ctx, target)
	} else {
		res, err = e.GenerateFile(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := res.Save(outDir)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s (%d sections on %d pages", path, res.Captured(), res.Pages())
	if res.Skipped() > 0 {
		fmt.Printf(", %d skipped", res.Skipped())
	}
	fmt.Printf(", %s)\n", res.Elapsed().Round(time.Millisecond))
	return nil
}

// runInfo implements the "info" command.
func runInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no input file specified")
	}
	inputFile := args[0]

	info, err := pdfinfo.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputFile, err)
	}

	fmt.Printf("File:    %s\n", inputFile)
	fmt.Printf("Version: PDF-%s\n", info.Version)
	fmt.Printf("Pages:   %d\n", info.Pages)

	if len(info.MediaBoxes) > 0 {
		fmt.Println()
		fmt.Println("Media boxes (pt):")
		for _, box := range info.MediaBoxes {
			fmt.Printf("  [%.2f %.2f %.2f %.2f]\n", box[0], box[1], box[2], box[3])
		}
	}
	return nil
}
