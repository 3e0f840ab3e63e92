package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/strichware/bardec/internal/pipeline"
)

// fileResult pairs a decode result with its source path for batch output.
type fileResult struct {
	File   string          `json:"file"`
	Result pipeline.Result `json:"result"`
}

// decodeCmd decodes one or more image files.
var decodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Decode barcodes from image files",
	Long: `Decode barcodes from one or more image files (PNG, JPEG, GIF, BMP).

Files are processed concurrently with a worker pool. The exit code is
non-zero if any file fails to decode, unless --continue-on-error is set.

Examples:
  bardec decode shelf.png
  bardec decode --format json --trace *.jpg
  bardec decode --budget 5000 --workers 4 photo.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		showTrace := cfg.Output.TraceEnabled
		if cmd.Flags().Changed("trace") {
			showTrace, _ = cmd.Flags().GetBool("trace")
		}
		continueOnError := cfg.Batch.ContinueOnError
		if cmd.Flags().Changed("continue-on-error") {
			continueOnError, _ = cmd.Flags().GetBool("continue-on-error")
		}
		batchWorkers := cfg.Batch.Workers
		if cmd.Flags().Changed("batch-workers") {
			batchWorkers, _ = cmd.Flags().GetInt("batch-workers")
		}

		builder := cfg.PipelineBuilder()
		if cmd.Flags().Changed("budget") {
			budget, _ := cmd.Flags().GetInt("budget")
			builder.WithBudget(budget)
		}
		if cmd.Flags().Changed("timeout") {
			timeoutMs, _ := cmd.Flags().GetInt("timeout")
			builder.WithTimeout(time.Duration(timeoutMs) * time.Millisecond)
		}
		if cmd.Flags().Changed("workers") {
			workers, _ := cmd.Flags().GetInt("workers")
			builder.WithWorkers(workers)
		}
		if cmd.Flags().Changed("no-qr") {
			noQR, _ := cmd.Flags().GetBool("no-qr")
			builder.WithMatrix(!noQR)
		}

		pl, err := builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		results := decodeFiles(cmd.Context(), pl, args, batchWorkers)

		failed := 0
		for _, fr := range results {
			if !fr.Result.Success {
				failed++
			}
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		} else {
			for _, fr := range results {
				printTextResult(cmd, fr, showTrace)
			}
		}

		if failed > 0 && !continueOnError {
			return fmt.Errorf("%d of %d file(s) failed to decode", failed, len(results))
		}
		return nil
	},
}

// decodeFiles runs the pipeline over files with a bounded worker pool,
// preserving input order in the output.
func decodeFiles(ctx context.Context, pl *pipeline.Pipeline, files []string, workers int) []fileResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]fileResult, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for itn := 0; itn < workers; itn++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = fileResult{
					File:   files[idx],
					Result: decodeFile(ctx, pl, files[idx]),
				}
			}
		}()
	}
	for idx := range files {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

func decodeFile(ctx context.Context, pl *pipeline.Pipeline, path string) pipeline.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Result{
			Success: false,
			Error:   fmt.Sprintf("read file: %v", err),
		}
	}
	return pl.DecodeBytes(ctx, data)
}

func printTextResult(cmd *cobra.Command, fr fileResult, showTrace bool) {
	out := cmd.OutOrStdout()
	if fr.Result.Success {
		fmt.Fprintf(out, "%s: %s (%s, %d attempts, %.1fms)\n",
			fr.File, fr.Result.Payload, fr.Result.Symbology,
			fr.Result.Attempts, float64(fr.Result.DurationNs)/1e6)
	} else {
		fmt.Fprintf(out, "%s: FAILED: %s\n", fr.File, fr.Result.Error)
	}
	if showTrace {
		for _, entry := range fr.Result.Trace {
			fmt.Fprintf(out, "  %s: %s\n", entry.Strategy, entry.Reason)
		}
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	decodeCmd.Flags().Bool("trace", false, "print the strategy trace for each file")
	decodeCmd.Flags().Int("budget", 0, "decoder evaluation budget per image (0 = config default)")
	decodeCmd.Flags().Int("timeout", 0, "per-image timeout in milliseconds (0 = config default)")
	decodeCmd.Flags().Int("workers", 0, "parallel transform workers per image (0 = config default)")
	decodeCmd.Flags().Int("batch-workers", 4, "number of files decoded concurrently")
	decodeCmd.Flags().Bool("no-qr", false, "skip the QR priority path")
	decodeCmd.Flags().Bool("continue-on-error", false, "exit zero even if some files fail")
}
