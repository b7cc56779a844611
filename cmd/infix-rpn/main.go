package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/infix-rpn/internal/batch"
	"github.com/karupanerura/infix-rpn/internal/rpn"
	"github.com/karupanerura/infix-rpn/internal/server"
	"github.com/mattn/go-isatty"
)

type Option struct {
	File        string `short:"f" long:"file" description:"[OPTIONAL] Batch file of expressions (.yaml or .json)" required:"false"`
	Listen      string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the conversion API" required:"false"`
	JSON        bool   `long:"json" description:"[OPTIONAL] Print results as JSON"`
	MaxDepth    int    `long:"max-depth" description:"[OPTIONAL] Deepest bracket nesting accepted" default:"256"`
	Parallelism int    `short:"p" long:"parallelism" description:"[OPTIONAL] Conversions in flight for --file (0: unlimited)" default:"0"`
	Debug       bool   `long:"debug" description:"[OPTIONAL] Dump token sequences to stderr"`

	// A present but empty EXPRESSION still selects conversion.
	Args struct {
		Expression []string `positional-arg-name:"EXPRESSION" description:"Infix expression to convert"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(stdout)
			return 1
		}
	}

	if len(opt.Args.Expression) > 1 {
		parser.WriteHelp(stdout)
		return 1
	}

	modes := 0
	for _, set := range []bool{len(opt.Args.Expression) != 0, opt.File != "", opt.Listen != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		parser.WriteHelp(stdout)
		return 1
	}

	conv := &rpn.Converter{MaxDepth: opt.MaxDepth, Debug: opt.Debug}

	// server mode
	if opt.Listen != "" {
		if err = serveConversions(opt.Listen, conv); err != nil {
			log.Printf("failed to serve conversions: %v", err)
			return 1
		}
		return 0
	}

	// batch mode
	if opt.File != "" {
		entries, err := loadBatch(opt.File)
		if err != nil {
			log.Printf("failed to load batch: %v", err)
			return 1
		}

		results, err := batch.Run(context.Background(), conv, entries, opt.Parallelism)
		if err != nil {
			log.Printf("failed to run batch: %v", err)
			return 1
		}

		failed := false
		for _, r := range results {
			if len(r.Diagnostics) != 0 {
				failed = true
			}
			if !opt.JSON {
				printConversion(stdout, stderr, r.Name+": ", r.Conversion)
			}
		}
		if opt.JSON {
			if err = dumpJSON(stdout, results); err != nil {
				log.Printf("failed to dump batch results: %v", err)
				return 1
			}
		}
		if failed {
			return 1
		}
		return 0
	}

	c := conv.Convert(opt.Args.Expression[0])
	if opt.JSON {
		if err = dumpJSON(stdout, c); err != nil {
			log.Printf("failed to dump conversion: %v", err)
			return 1
		}
	} else {
		printConversion(stdout, stderr, "", c)
	}
	if len(c.Diagnostics) != 0 {
		return 1
	}
	return 0
}

func printConversion(stdout, stderr io.Writer, prefix string, c *rpn.Conversion) {
	balanced := ""
	if !c.Balanced {
		balanced = "not "
	}
	fmt.Fprintf(stdout, "%s\"%s\" is %sbalanced\n", prefix, c.Expression, balanced)
	fmt.Fprintf(stdout, "%s\"%s\" in reverse-Polish notation is \"%s\"\n", prefix, c.Expression, c.RPN)

	for _, d := range c.Diagnostics {
		fmt.Fprintf(stderr, "%sError: %v\n", prefix, d)
	}
}

func loadBatch(filePath string) ([]batch.Entry, error) {
	var parseBatch func(io.Reader) ([]batch.Entry, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseBatch = batch.ParseJSON
	case ".yaml", ".yml":
		parseBatch = batch.ParseYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	entries, err := parseBatch(f)
	if err != nil {
		return nil, fmt.Errorf("batch.Parse: %w", err)
	}
	return entries, nil
}

func serveConversions(listen string, conv *rpn.Converter) error {
	srv := http.Server{
		Handler: server.NewHTTPHandler(conv),
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
