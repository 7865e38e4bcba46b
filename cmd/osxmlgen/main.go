package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joho9119/other-support-xml-gen/pkg/convert"
	"github.com/joho9119/other-support-xml-gen/pkg/extract"
	"github.com/joho9119/other-support-xml-gen/pkg/fetch"
	"github.com/joho9119/other-support-xml-gen/pkg/logger"
	"github.com/joho9119/other-support-xml-gen/pkg/watch"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "osxmlgen",
		Short: "NIH Other Support to SciENcv XML converter",
		Long: `osxmlgen converts NIH "Other Support" Word documents into the
SciENcv profile XML expected by grant submission systems.

It reads the document's labeled fields (project titles, award numbers,
support sources, date ranges, person-month tables) across the ACTIVE,
PENDING, and IN-KIND sections and emits one validated <profile> document.`,
		Version: version,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(labelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConverter assembles the pipeline shared by convert and watch.
func buildConverter(labelOverlay, cacheDir string) (*convert.Converter, error) {
	labels := extract.DefaultLabels()
	if labelOverlay != "" {
		if err := labels.LoadOverlay(labelOverlay); err != nil {
			return nil, err
		}
	}

	fetchConfig := fetch.DefaultConfig()
	fetchConfig.CacheDir = cacheDir
	fetcher, err := fetch.NewFetcher(fetchConfig)
	if err != nil {
		return nil, err
	}

	return convert.NewWithOptions(extract.NewParserWithLabels(labels), fetcher), nil
}

func convertCmd() *cobra.Command {
	var (
		outputPath   string
		toStdout     bool
		labelOverlay string
		cacheDir     string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "convert [path-or-url]",
		Short: "Convert an Other Support document to SciENcv XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(os.Stderr, verbose)

			converter, err := buildConverter(labelOverlay, cacheDir)
			if err != nil {
				return err
			}

			result, err := converter.Convert(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			log.Debug("parsed document",
				"supports", len(result.Profile.Funding),
				"lastname", result.Profile.LastName())

			if toStdout {
				fmt.Fprintln(cmd.OutOrStdout(), result.XML)
				return nil
			}

			outPath := outputPath
			if outPath == "" {
				outPath = result.FileName
			} else if info, statErr := os.Stat(outPath); statErr == nil && info.IsDir() {
				outPath = filepath.Join(outPath, result.FileName)
			}

			if err := os.WriteFile(outPath, []byte(result.XML), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			log.Info("wrote profile XML", "file", outPath,
				"supports", len(result.Profile.Funding))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file or directory (default: derived filename in the working directory)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the XML to stdout instead of writing a file")
	cmd.Flags().StringVar(&labelOverlay, "labels", "", "YAML file overriding label recognition patterns")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for caching downloaded documents")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func watchCmd() *cobra.Command {
	var (
		outDir       string
		labelOverlay string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and convert every new .docx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(os.Stderr, verbose)

			converter, err := buildConverter(labelOverlay, "")
			if err != nil {
				return err
			}

			watcher := watch.New(converter, log, outDir)
			return watcher.Run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for converted XML (default: next to each source document)")
	cmd.Flags().StringVar(&labelOverlay, "labels", "", "YAML file overriding label recognition patterns")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func labelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the label vocabulary and its recognition patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := extract.DefaultLabels()
			for _, id := range extract.AllLabelIDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", id, labels.Pattern(id).String())
			}
			return nil
		},
	}
}
