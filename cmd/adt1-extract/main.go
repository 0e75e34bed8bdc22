package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/a3tai/adt1-extractor/internal/config"
	apperrors "github.com/a3tai/adt1-extractor/internal/errors"
	"github.com/a3tai/adt1-extractor/internal/extract"
	"github.com/a3tai/adt1-extractor/internal/mcp"
	"github.com/a3tai/adt1-extractor/internal/output"
	"github.com/a3tai/adt1-extractor/internal/pdf"
	"github.com/a3tai/adt1-extractor/internal/pipeline"
	"github.com/a3tai/adt1-extractor/internal/summary"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newEngine builds the text engine named in the configuration
var newEngine = pdf.NewEngine

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(io.Discard)
		}
	} else {
		// stdout carries the extracted fields
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func main() {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion(os.Stdout)
		return
	}
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(apperrors.ExitConfig)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(apperrors.ExitCode(err))
	}
}

// run wires the components for cfg and executes the configured mode
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	engine, err := newEngine(cfg.Engine)
	if err != nil {
		return apperrors.Config("create engine", err)
	}

	placeholders, err := summary.PlaceholdersFrom(cfg.Placeholders)
	if err != nil {
		return apperrors.Config("load placeholders", err)
	}

	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.Directory, engine)
	if err != nil {
		return apperrors.Config("create PDF service", err)
	}

	p, err := pipeline.New(pdfService, placeholders)
	if err != nil {
		return apperrors.Config("create pipeline", err)
	}

	if cfg.IsStdioMode() {
		server, err := mcp.NewServer(cfg, p)
		if err != nil {
			return apperrors.Config("create MCP server", err)
		}
		return server.Run(ctx)
	}

	writer, err := output.NewWriter(output.Format(cfg.Format))
	if err != nil {
		return apperrors.Config("create writer", err)
	}
	return extractDocument(cfg, p, writer, stdout)
}

// extractDocument extracts the configured input, reports the fields on
// stdout and writes the record and summary files
func extractDocument(cfg *config.Config, p *pipeline.Pipeline, writer *output.Writer, stdout io.Writer) error {
	result, err := p.ExtractFile(cfg.InputPath)
	if err != nil {
		return err
	}

	printFields(stdout, result.Record())

	if err := writer.WriteRecord(cfg.RecordPath, result.Record()); err != nil {
		return err
	}
	if err := writer.WriteSummary(cfg.SummaryPath, result.Summary); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\nSummary written to %s:\n\n%s\n", cfg.SummaryPath, result.Summary)
	return nil
}

func printFields(w io.Writer, rec *extract.Record) {
	fmt.Fprintln(w, "Extracted fields:")
	rec.Each(func(f extract.Field, value string) {
		fmt.Fprintf(w, "%s: %s\n", f, value)
	})
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "ADT-1 Extractor\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
