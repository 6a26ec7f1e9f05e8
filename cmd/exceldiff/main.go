// Package main provides the CLI entry point for exceldiff.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sujitpursuit/exceldiff/internal/logutil"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/output"
	"github.com/sujitpursuit/exceldiff/pkg/exceldiff/parser"
)

var (
	outputPath    string
	pretty        bool
	rawResult     bool
	title         string
	includeHidden bool
	caseSensitive bool
	quiet         bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exceldiff [old.xlsx] [new.xlsx]",
		Short: "Compare two versions of a source-target mapping workbook",
		Long: `exceldiff compares two versions of a source-target mapping workbook
and reports added, deleted and modified tabs and mapping rows as JSON.
Matching is content-based, so reordered rows and duplicated or truncated
tab names do not produce false differences.`,
		Args:          cobra.ExactArgs(2),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&rawResult, "raw", false, "Emit the raw comparison result instead of the report document")
	rootCmd.Flags().StringVar(&title, "title", "", "Custom report title")
	rootCmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Compare hidden sheets as well")
	rootCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Compare field values case-sensitively")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-sheet analysis detail")

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger().Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logutil.GetLogger()
	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	}

	file1, file2 := args[0], args[1]
	for _, path := range []string{file1, file2} {
		if err := validateInput(path); err != nil {
			return err
		}
	}

	book1, err := parser.AnalyzeWorkbook(file1)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", file1, err)
	}
	book2, err := parser.AnalyzeWorkbook(file2)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", file2, err)
	}

	opts := exceldiff.Options{
		IncludeHidden: includeHidden,
		CaseSensitive: caseSensitive,
	}
	result := exceldiff.Compare(file1, file2, book1, book2, opts)

	for _, e := range result.Errors {
		log.Warn(e)
	}
	log.WithFields(logrus.Fields{
		"tabs_added":    result.Summary.TabsAdded,
		"tabs_deleted":  result.Summary.TabsDeleted,
		"tabs_modified": result.Summary.TabsModified,
		"rows_added":    result.Summary.MappingsAdded,
		"rows_deleted":  result.Summary.MappingsDeleted,
		"rows_modified": result.Summary.MappingsModified,
	}).Info("comparison complete")

	var jsonData []byte
	if rawResult {
		jsonData, err = output.ResultToJSON(result, pretty)
	} else {
		jsonData, err = output.ToJSON(output.BuildReport(result, title), pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.WithField("path", outputPath).Info("report written")
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func validateInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", exceldiff.ErrFileNotFound, path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", exceldiff.ErrInvalidFormat, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return nil
	default:
		return fmt.Errorf("%w: %s (expected .xlsx or .xlsm)", exceldiff.ErrInvalidFormat, path)
	}
}
