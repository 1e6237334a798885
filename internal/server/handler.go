// Package server exposes the HTTP surface: upload a tabular file, poll the
// job, download the annotated result exactly once.
package server

import (
	"net/http"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/annotatr/remarks-service/constants"
	"github.com/annotatr/remarks-service/internal/async"
	"github.com/annotatr/remarks-service/internal/jobstore"
	"github.com/annotatr/remarks-service/internal/storage"
)

type Handler struct {
	store  jobstore.Store
	files  *storage.Local
	queue  async.Queue
	logger *slog.Logger
}

func NewHandler(store jobstore.Store, files *storage.Local, queue async.Queue, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  store,
		files:  files,
		queue:  queue,
		logger: logger,
	}
}

// Upload accepts a multipart file, mints a job, and schedules processing.
// The response returns immediately; clients poll /status for the outcome.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing file upload"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !constants.AllowedExt(ext) {
		h.logger.Info("upload.rejected", "file", fileHeader.Filename, "ext", ext)
		c.JSON(http.StatusBadRequest, gin.H{"message": "unsupported file extension, expected .csv or .xlsx"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "could not read file upload"})
		return
	}
	defer func() { _ = src.Close() }()

	id := h.store.Create()
	uploadPath, err := h.files.SaveUpload(id, ext, src)
	if err != nil {
		h.store.Remove(id)
		h.logger.Error("upload.save.failed", "job_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not store file upload"})
		return
	}

	if err := h.queue.Enqueue(c.Request.Context(), async.Task{
		JobID:        id,
		UploadPath:   uploadPath,
		OriginalName: fileHeader.Filename,
		SubmittedAt:  time.Now().UTC(),
	}); err != nil {
		h.store.Fail(id, "could not schedule processing")
		h.files.Remove(uploadPath)
		h.logger.Error("upload.enqueue.failed", "job_id", id, "error", err)
		// The job is terminal; the client still gets an id to poll.
		c.JSON(http.StatusAccepted, gin.H{
			"message": "file received but processing could not be scheduled",
			"file_id": id,
		})
		return
	}

	h.logger.Info("upload.accepted", "job_id", id, "file", fileHeader.Filename, "size", fileHeader.Size)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "file accepted for processing",
		"file_id": id,
	})
}

// Status reports the job state, with a download reference once completed.
func (h *Handler) Status(c *gin.Context) {
	id := c.Param("file_id")

	job, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	switch job.Status {
	case constants.JobStatusCompleted:
		c.JSON(http.StatusOK, gin.H{
			"status":       job.Status,
			"download_url": "/download/" + job.ID,
		})
	case constants.JobStatusError:
		c.JSON(http.StatusOK, gin.H{
			"status":  job.Status,
			"message": job.ErrorMessage,
		})
	default:
		c.JSON(http.StatusOK, gin.H{"status": job.Status})
	}
}

// Download streams the result and consumes the job: the record is claimed
// before the transfer and the artifact removed after it, so a second
// request sees 404 whether or not the first client read the whole body.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("file_id")

	job, ok := h.store.Claim(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "job not found"})
		return
	}

	c.FileAttachment(job.ResultPath, job.ResultName)
	h.files.Remove(job.ResultPath)
	h.logger.Info("download.consumed", "job_id", id, "file", job.ResultName)
}

// Health is a liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
