package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"datasetforge/pkg/config"
	"datasetforge/pkg/errutil"
	"datasetforge/pkg/health"
	"datasetforge/services/dataset"
	"datasetforge/services/task"
	"datasetforge/services/template"

	"github.com/gin-gonic/gin"
)

// Handler exposes the job-submission and status surface. Validation
// happens synchronously before any task exists; everything after
// staging runs on the worker pool.
type Handler struct {
	uploadDir string
	coord     *task.Coordinator
	dataset   *dataset.Service
	template  *template.Service
	health    health.HealthService
}

func NewHandler(cfg *config.Config, coord *task.Coordinator, ds *dataset.Service, ts *template.Service, hs health.HealthService) *Handler {
	return &Handler{
		uploadDir: cfg.Storage.UploadDir,
		coord:     coord,
		dataset:   ds,
		template:  ts,
		health:    hs,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", h.health.Liveness)
	api.GET("/ready", h.health.Readiness)
	api.POST("/upload", h.Upload)
	api.POST("/template", h.Template)
	api.GET("/tasks/:id", h.TaskStatus)
}

// Upload accepts one or more documents and submits a document-pipeline
// task. Archive expansion is deferred into the worker.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(errutil.ValidationFailed("invalid multipart form", errutil.WithErr(err)))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	files = named(files)
	if len(files) == 0 {
		c.Error(errutil.ValidationFailed("no file(s) provided"))
		return
	}

	t := h.coord.Create("Task queued")

	paths, err := h.stage(c, t.ID, files)
	if err != nil {
		h.coord.Fail(t.ID, err)
		c.Error(err)
		return
	}

	h.coord.Dispatch(t.ID, func(ctx context.Context) (any, string, error) {
		result, err := h.dataset.Generate(ctx, t.ID, paths)
		if err != nil {
			return nil, "", err
		}
		return result, fmt.Sprintf("Dataset generated successfully from %d file(s)", len(paths)), nil
	})

	h.accepted(c, t)
}

// Template accepts a spreadsheet template plus row_count and format
// and submits a template-pipeline task. Bad row_count or format is
// rejected before the task is created.
func (h *Handler) Template(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Error(errutil.ValidationFailed("no file provided", errutil.WithErr(err)))
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		c.Error(errutil.ValidationFailed("template must be an .xlsx file"))
		return
	}

	rowCount, err := strconv.Atoi(c.DefaultPostForm("row_count", "10"))
	if err != nil || rowCount <= 0 {
		c.Error(errutil.ValidationFailed("row_count must be a positive integer"))
		return
	}

	format := strings.ToLower(c.DefaultPostForm("format", "csv"))
	if format != "csv" && format != "xlsx" {
		c.Error(errutil.ValidationFailed(fmt.Sprintf("unsupported format: %s", format)))
		return
	}

	t := h.coord.Create("Task queued")

	paths, err := h.stage(c, t.ID, []*multipart.FileHeader{file})
	if err != nil {
		h.coord.Fail(t.ID, err)
		c.Error(err)
		return
	}

	h.coord.Dispatch(t.ID, func(ctx context.Context) (any, string, error) {
		result, err := h.template.Generate(ctx, t.ID, paths[0], rowCount, format)
		if err != nil {
			return nil, "", err
		}
		return result, fmt.Sprintf("Generated %d row(s) of synthetic data", rowCount), nil
	})

	h.accepted(c, t)
}

// TaskStatus returns a point-in-time view of a task. Unknown IDs yield
// the synthetic not_found status, a neutral result rather than an
// error.
func (h *Handler) TaskStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.coord.Status(c.Param("id")))
}

// stage saves the uploads under a directory keyed by task ID so
// concurrent tasks with colliding base names never interfere.
func (h *Handler) stage(c *gin.Context, taskID string, files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(h.uploadDir, taskID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errutil.Internal("error staging uploads", errutil.WithErr(err))
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		dst := filepath.Join(dir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, dst); err != nil {
			return nil, errutil.Internal("error staging uploads", errutil.WithErr(err))
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func (h *Handler) accepted(c *gin.Context, t task.Task) {
	c.JSON(http.StatusAccepted, gin.H{
		"task_id":    t.ID,
		"message":    t.Message,
		"status_url": "/api/tasks/" + t.ID,
	})
}

func named(files []*multipart.FileHeader) []*multipart.FileHeader {
	kept := files[:0]
	for _, f := range files {
		if f != nil && f.Filename != "" {
			kept = append(kept, f)
		}
	}
	return kept
}
