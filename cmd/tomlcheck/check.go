package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kezhuw/tomlpos"
	"github.com/kezhuw/tomlpos/internal/report"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Check TOML files for syntax errors.",
	Long: `Check TOML files for syntax errors.
	Each failing file is reported with the line and column of its first error.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		format, err := report.ParseFormat(getString(cmd, "format"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		c := &checker{
			printer: report.ForTerminal(format, int(os.Stdout.Fd())),
			out:     os.Stdout,
		}
		files := uniqueFiles(args)
		failed := c.checkAll(files)

		if getFlag(cmd, "watch") {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := watchFiles(ctx, c, files); err != nil {
				log.Fatalf("failed to watch files: %s", err)
			}
			return
		}
		if failed != 0 {
			os.Exit(1)
		}
	},
}

// checker parses files and prints their failures.
type checker struct {
	printer *report.Printer
	out     io.Writer
}

// checkFile reports whether the file at path is valid TOML.
func (c *checker) checkFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("read file %q: %s", path, err)
		return false
	}
	if err := toml.Valid(data); err != nil {
		if perr := c.printer.Print(c.out, path, data, err); perr != nil {
			log.Errorf("print report: %s", perr)
		}
		return false
	}
	log.Debugf("%s: ok", path)
	return true
}

// checkAll checks all files and returns the number of failures.
func (c *checker) checkAll(files []string) (failed int) {
	for _, path := range files {
		if !c.checkFile(path) {
			failed++
		}
	}
	log.Debugf("checked %d files, %d failed", len(files), failed)
	return failed
}

func uniqueFiles(args []string) []string {
	files := slices.Clone(args)
	slices.Sort(files)
	return slices.Compact(files)
}

func init() {
	checkCmd.Flags().StringP("format", "f", "auto", "output format: auto, short or pretty")
	checkCmd.Flags().BoolP("watch", "w", false, "watch files for changes and check again")
	rootCmd.AddCommand(checkCmd)
}
