package health

import (
	"net/http"
	"os"

	"datasetforge/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Module("health", fx.Provide(ProvideHealth))

type Dependency struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Health struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Deps    []Dependency `json:"deps,omitempty"`
}

type HealthService interface {
	Liveness(c *gin.Context)
	Readiness(c *gin.Context)
}

type health struct {
	uploadDir string
	outputDir string
}

type HealthParams struct {
	fx.In
	Cfg *config.Config
}

func ProvideHealth(p HealthParams) HealthService {
	return &health{
		uploadDir: p.Cfg.Storage.UploadDir,
		outputDir: p.Cfg.Storage.OutputDir,
	}
}

func (h *health) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, &Health{
		Status:  "healthy",
		Message: "OK",
	})
}

func (h *health) Readiness(c *gin.Context) {
	this := &Health{
		Status:  "healthy",
		Message: "OK",
	}

	deps := make([]Dependency, 0)
	for _, dir := range []struct {
		name string
		path string
	}{
		{"uploads", h.uploadDir},
		{"output", h.outputDir},
	} {
		dep := Dependency{
			Name:    dir.name,
			Status:  "healthy",
			Message: "OK",
		}

		if err := os.MkdirAll(dir.path, 0o755); err != nil {
			dep.Status = "unhealthy"
			dep.Message = err.Error()
			this.Status = "unhealthy"
		}

		deps = append(deps, dep)
	}

	this.Deps = deps

	status := http.StatusOK
	if this.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, this)
}
