package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/cobra"

	"vehicle-insights/charts"
	"vehicle-insights/server"
	"vehicle-insights/storage"
	"vehicle-insights/utils"
)

// exportCmd writes every chart to a directory
var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Render all charts and their datasets to a directory",
	Long: `Render every dashboard chart as <name>.png together with its dataset as
<name>.json, plus preview.json and summary.json. Charts with no data are
skipped. Rendering runs concurrently, bounded by EXPORT_CONCURRENCY.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := contextOf(cmd)

	ds, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	dash := server.NewDashboard(ds, storage.Describe(cfg), cfg.PreviewRows, logger)
	pool := utils.NewWorkerPool(ctx, cfg.ExportConcurrency)
	var written atomic.Int64

	pool.Submit(func(context.Context) error {
		return writeJSON(filepath.Join(dir, "preview.json"), dash.Preview(), &written)
	})
	pool.Submit(func(context.Context) error {
		return writeJSON(filepath.Join(dir, "summary.json"), dash.Summary(), &written)
	})
	for _, c := range server.Charts() {
		pool.Submit(func(ctx context.Context) error {
			return exportChart(ctx, dash, dir, c.Name, &written, logger)
		})
	}

	if err := pool.Wait(); err != nil {
		logger.Error("Export failed: %v", err)
		return err
	}
	logger.Info("Exported %d files (%d charts and datasets) to %s", written.Load(), pool.Completed(), dir)
	return nil
}

func exportChart(ctx context.Context, dash *server.Dashboard, dir, name string, written *atomic.Int64, logger *utils.Logger) error {
	data, err := dash.ChartData(name)
	if err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, name+".json"), data, written); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	err = dash.RenderChart(name, &buf)
	if errors.Is(err, charts.ErrNoData) {
		logger.Warn("Chart %s has no data, skipping image", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".png"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	written.Add(1)
	logger.Debug("Wrote %s.png (%d bytes)", name, buf.Len())
	return nil
}

func writeJSON(path string, v any, written *atomic.Int64) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	written.Add(1)
	return nil
}
