// Command analyze scores a chapter file against the ten learning principles
// and prints a summary or the full JSON report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/learnlens/internal/app"
	"github.com/yungbote/learnlens/internal/config"
	"github.com/yungbote/learnlens/internal/domain"
	"github.com/yungbote/learnlens/internal/ingest"
	"github.com/yungbote/learnlens/internal/platform/apierr"
	"github.com/yungbote/learnlens/internal/platform/logger"
	"github.com/yungbote/learnlens/internal/platform/shutdown"
	"github.com/yungbote/learnlens/internal/report"
)

type conceptFlags []domain.CustomConcept

func (c *conceptFlags) String() string {
	names := make([]string, 0, len(*c))
	for _, cc := range *c {
		names = append(names, cc.Name)
	}
	return strings.Join(names, ",")
}

func (c *conceptFlags) Set(v string) error {
	cc, err := ingest.ParseCustomConcept(v)
	if err != nil {
		return err
	}
	*c = append(*c, cc)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if code := apierr.CodeOf(err); code != "" {
			fmt.Fprintf(os.Stderr, "analyze: %v (%s)\n", err, code)
		} else {
			fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file        = fs.String("file", "", "chapter file (markdown, text or pdf); - reads stdin")
		formatFlag  = fs.String("format", "auto", "input format: auto, markdown, text or pdf")
		title       = fs.String("title", "", "chapter title (defaults to the first heading)")
		domainFlag  = fs.String("domain", "", "subject domain used to seed concept extraction")
		crossDomain = fs.Bool("cross-domain", false, "seed extraction with every domain lexicon")
		jsonOut     = fs.Bool("json", false, "print the full report as JSON")
		quiet       = fs.Bool("quiet", false, "suppress progress output")
		verbose     = fs.Bool("v", false, "log pipeline details to stderr")
		concepts    conceptFlags
	)
	fs.Var(&concepts, "concept", "custom concept as name[:core|supporting|detail]; repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return errors.New("-file is required")
	}
	format, err := ingest.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Nop()
	if *verbose {
		if log, err = logger.New("development"); err != nil {
			return err
		}
		defer log.Sync()
	}

	var in ingest.Input
	if *file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		in = ingest.Input{Title: *title, Format: format, Data: data}
	} else if in, err = ingest.ReadFile(*file, format, *title); err != nil {
		return err
	}
	in.Domain = *domainFlag
	ch, err := ingest.Build(in)
	if err != nil {
		return err
	}

	req := domain.AnalysisRequest{
		Chapter:            ch,
		Domain:             *domainFlag,
		IncludeCrossDomain: *crossDomain,
		CustomConcepts:     concepts,
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	core := app.WireCore(log, cfg, nil)
	res, err := core.Runner.Analyze(ctx, req, func(m domain.RunMessage) {
		if !*quiet && m.Type == domain.MessageProgress {
			fmt.Fprintln(stderr, report.ProgressLine(m))
		}
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = io.WriteString(stdout, report.Summary(res))
	return err
}
