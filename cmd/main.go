package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analysis/sentiment"

	"github.com/spf13/cobra"
)

var (
	lexiconFile string
	catalogFile string
	imageLabel  string
	imageScore  float64
)

var rootCmd = &cobra.Command{
	Use:   "sentiment",
	Short: "A CLI for offline market sentiment analysis",
	Long:  `Analyzes financial text with the keyword engine and prints the result as JSON. No network access or database is needed.`,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a text file, or stdin when no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var (
		text []byte
		err  error
	)
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
	} else {
		text, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	req := engine.Request{Text: string(text)}
	if imageLabel != "" {
		req.ImageSentiment = &sentiment.Score{Label: sentiment.Label(imageLabel), Score: imageScore}
	}
	result, err := eng.Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func newEngine() (*engine.Engine, error) {
	var (
		lex     *lexicon.Lexicon
		catalog *asset.Catalog
		err     error
	)
	if lexiconFile != "" {
		lex, err = lexicon.LoadFile(lexiconFile)
	} else {
		lex, err = lexicon.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	if catalogFile != "" {
		catalog, err = asset.LoadCatalogFile(catalogFile)
	} else {
		catalog, err = asset.DefaultCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset catalog: %w", err)
	}
	return engine.New(lex, catalog, engine.DefaultPolicy())
}

func main() {
	analyzeCmd.Flags().StringVar(&lexiconFile, "lexicon", "", "Path to a lexicon YAML file replacing the built-in lexicon")
	analyzeCmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to an asset catalog YAML file replacing the built-in catalog")
	analyzeCmd.Flags().StringVar(&imageLabel, "image-label", "", "Sentiment label of an accompanying image (POSITIVE, NEGATIVE or NEUTRAL)")
	analyzeCmd.Flags().Float64Var(&imageScore, "image-score", 0, "Score in [0, 1] of the accompanying image sentiment")
	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'\n", err)
		os.Exit(1)
	}
}
