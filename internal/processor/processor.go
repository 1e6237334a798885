// Package processor runs the annotation pipeline for one job: decode the
// upload, allocate REMARKS labels, append the column, encode and persist
// the result, and record the outcome in the job store.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/annotatr/remarks-service/constants"
	"github.com/annotatr/remarks-service/internal/async"
	"github.com/annotatr/remarks-service/internal/jobstore"
	"github.com/annotatr/remarks-service/internal/remarks"
	"github.com/annotatr/remarks-service/internal/storage"
	"github.com/annotatr/remarks-service/internal/tabular"
)

type Processor struct {
	store   jobstore.Store
	files   *storage.Local
	alloc   *remarks.Allocator
	minRows int
	logger  *slog.Logger
}

func New(store jobstore.Store, files *storage.Local, alloc *remarks.Allocator, minRows int, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if minRows < 1 {
		minRows = 1
	}
	return &Processor{
		store:   store,
		files:   files,
		alloc:   alloc,
		minRows: minRows,
		logger:  logger,
	}
}

// Process runs detached from the upload request: every failure lands in job
// state via Fail, and the raw upload is removed no matter how the pipeline
// exits. The returned error is for worker-pool logging only.
func (p *Processor) Process(ctx context.Context, task async.Task) (err error) {
	defer p.files.Remove(task.UploadPath)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing fault: %v", r)
			p.store.Fail(task.JobID, "internal processing error")
			p.logger.Error("processor.panic", "job_id", task.JobID, "panic", r)
		}
	}()

	start := time.Now()
	if err := p.process(ctx, task); err != nil {
		p.store.Fail(task.JobID, err.Error())
		return err
	}
	p.logger.Info("processor.job.ok",
		"job_id", task.JobID,
		"file", task.OriginalName,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Processor) process(ctx context.Context, task async.Task) error {
	ext := filepath.Ext(task.OriginalName)
	format, err := tabular.FormatForExt(ext)
	if err != nil {
		return fmt.Errorf("unsupported file format %q", ext)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(task.UploadPath)
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	table, err := tabular.Decode(f, format)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("could not parse file as %s: %w", format, err)
	}

	if table.RowCount() < p.minRows {
		return fmt.Errorf("file must have at least %d rows, got %d", p.minRows, table.RowCount())
	}

	labels, err := p.alloc.Allocate(table.RowCount())
	if err != nil {
		return fmt.Errorf("allocate labels: %w", err)
	}
	if err := table.AppendColumn(remarks.ColumnName, labels); err != nil {
		return fmt.Errorf("append %s column: %w", remarks.ColumnName, err)
	}

	data, err := tabular.Encode(table, format)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	resultPath, err := p.files.WriteResult(task.JobID, string(format), data)
	if err != nil {
		return fmt.Errorf("persist result: %w", err)
	}

	if !p.store.Complete(task.JobID, resultPath, derivedName(task.OriginalName)) {
		// Duplicate invocation or a vanished job; don't orphan the artifact.
		p.files.Remove(resultPath)
	}
	return nil
}

// derivedName keeps the original base name and extension around the
// modification suffix: report.csv -> report_modified.csv.
func derivedName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	return base + constants.ModifiedSuffix + ext
}
