package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/decryp7/credit-card-billsplit/internal/api"
	"github.com/decryp7/credit-card-billsplit/internal/config"
	"github.com/decryp7/credit-card-billsplit/internal/extractor"
	"github.com/decryp7/credit-card-billsplit/internal/ledger"
	"github.com/decryp7/credit-card-billsplit/internal/logger"
	"github.com/decryp7/credit-card-billsplit/internal/models"
	"github.com/decryp7/credit-card-billsplit/internal/parser"
	"github.com/decryp7/credit-card-billsplit/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	formatFlag := flag.String("format", "table", "Output format: table, markdown or csv")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include card metadata rows in CSV")
	serveFlag := flag.Bool("serve", false, "Start the HTTP API; statements given as arguments are preloaded")
	configFlag := flag.String("config", "", "Optional config file (yaml, json or toml)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Credit Card Bill Split

Extracts card transactions from credit card statements and totals them
for splitting between PERSONAL and JOINT spending.

Usage:
  billsplit [flags] <statement.pdf|statement.txt> [more ...]
  billsplit -serve [statement.pdf]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print transactions and totals
  billsplit statement.pdf

  # Write CSV next to the input
  billsplit -format=csv statement.pdf

  # Text already extracted (pages separated by form feeds)
  pdftotext -layout statement.pdf - > statement.txt && billsplit statement.txt

  # Start the API on BILLSPLIT_ADDR (default :8080)
  billsplit -serve

Statement lines:
  CITI PREMIERMILES CARD 4444 5555 6666 5136 - J DOE    starts a card section
  05 JUN TAOBAO.COM Singapore SG 3.85                    charge
  07 JUN REFUND MERCHANT (12.00)                         credit
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("billsplit v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || (flag.NArg() == 0 && !*serveFlag) {
		flag.Usage()
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fatalf("Failed to load .env: %v\n", err)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	classifier, err := parser.NewClassifier(cfg.Patterns.CardHeader, cfg.Patterns.Transaction)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}
	engine := parser.NewEngine(classifier, log)

	if *serveFlag {
		serve(cfg, engine, log, flag.Args())
		return
	}

	format := strings.ToLower(*formatFlag)
	switch format {
	case "table", "markdown", "csv":
	default:
		fatalf("Unknown format %q. Supported: table, markdown, csv\n", *formatFlag)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, format, *outputFlag, *headerFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

// openStatement returns a page source for a PDF or an already-extracted text file.
func openStatement(inputPath string) (parser.PageSource, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}

	switch ext := strings.ToLower(filepath.Ext(inputPath)); ext {
	case ".pdf":
		return extractor.OpenFile(inputPath)
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, err
		}
		return extractor.ParseText(string(data))
	default:
		return nil, fmt.Errorf("expected .pdf or .txt file, got %q", ext)
	}
}

func extractStatement(engine *parser.Engine, inputPath string) (*models.Statement, error) {
	src, err := openStatement(inputPath)
	if err != nil {
		if errors.Is(err, extractor.ErrUnreadableDocument) {
			return nil, fmt.Errorf("statement could not be read (is it a text-based PDF?): %w", err)
		}
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "  Read %d page(s)\n", src.NumPages())

	stmt, err := engine.Run(src)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return stmt, nil
}

func processFile(engine *parser.Engine, inputPath, format, outputPath string, includeHeader bool) error {
	fmt.Fprintf(os.Stderr, "Processing: %s\n", inputPath)

	stmt, err := extractStatement(engine, inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  Found %d transaction(s) on %d card(s)\n", len(stmt.Transactions), len(stmt.Cards))
	if len(stmt.SkippedPages) > 0 {
		fmt.Fprintf(os.Stderr, "  Warning: skipped unreadable page(s) %v\n", stmt.SkippedPages)
	}
	if len(stmt.Transactions) == 0 {
		fmt.Fprintln(os.Stderr, "  Warning: No transactions found. The statement lines may not match the expected format.")
	}

	switch format {
	case "csv":
		outPath := outputPath
		if outPath == "" {
			outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
		}
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, stmt); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Output: %s\n", outPath)
	default:
		w := &writer.TableWriter{Markdown: format == "markdown"}
		if err := w.Write(os.Stdout, stmt.Transactions); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, "  Done.")
	return nil
}

func serve(cfg *config.Config, engine *parser.Engine, log zerolog.Logger, preload []string) {
	l := ledger.New()

	// Preloaded statements are installed one after another; the last wins.
	for _, inputPath := range preload {
		stmt, err := extractStatement(engine, inputPath)
		if err != nil {
			fatalf("Error processing %s: %v\n", inputPath, err)
		}
		l.Replace(stmt.Transactions)
	}

	app := api.NewApp(api.NewHandler(engine, l), api.Options{
		BodyLimit: cfg.BodyLimit(),
		StaticDir: cfg.StaticDir,
		Log:       log,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Int("transactions", l.Len()).Msg("API listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
