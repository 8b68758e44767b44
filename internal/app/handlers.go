package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/pipeline"
	"github.com/kegliz/nacompile/internal/compilesvc"
)

// JobRequest is the body of POST /v1/jobs: architecture, program and
// pipeline options mirroring the CLI flags.
type JobRequest struct {
	Nx int `json:"nx" binding:"required"`
	Ny int `json:"ny" binding:"required"`
	Nc int `json:"nc"`
	Nr int `json:"nr"`

	Program [][2]int `json:"program" binding:"required"`

	RoutingStrategy  string `json:"routing_strategy"`
	TrivialLayout    bool   `json:"trivial_layout"`
	ReverseToInitial bool   `json:"reverse_to_initial"`
	UseWindow        bool   `json:"window"`
	FullCode         bool   `json:"full_code"`
	Dependency       bool   `json:"dependency"`
	ToVerify         bool   `json:"to_verify"`
	Seed             int64  `json:"seed"`
}

// JobAcceptedResponse is returned by POST /v1/jobs.
type JobAcceptedResponse struct {
	ID string `json:"id"`
}

// JobStatusResponse is returned by GET /v1/jobs/:id.
type JobStatusResponse struct {
	ID      string            `json:"id"`
	Status  compilesvc.Status `json:"status"`
	Error   string            `json:"error,omitempty"`
	Compact []map[string]any  `json:"compact,omitempty"`
	Full    []map[string]any  `json:"full,omitempty"`
	Timing  *pipeline.Timing  `json:"timing,omitempty"`
}

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint
func (a *appServer) RootHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving root endpoint")

	c.JSON(http.StatusOK, gin.H{"service": "nacompile", "version": a.version})
}

// HealthHandler is the handler for the /healthz endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// SubmitJob is the handler for POST /v1/jobs.
func (a *appServer) SubmitJob(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding job request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	prog := make(model.Program, len(req.Program))
	for i, pair := range req.Program {
		prog[i] = model.NewGate(pair[0], pair[1])
	}

	if req.RoutingStrategy == "" {
		req.RoutingStrategy = "maximalis_sorted"
	}
	nc, nr := req.Nc, req.Nr
	if nc == 0 {
		nc = req.Nx
	}
	if nr == 0 {
		nr = req.Ny
	}

	id, err := a.svc.Submit(compilesvc.Request{
		Nx: req.Nx, Ny: req.Ny, Nc: nc, Nr: nr,
		Program: prog,
		Options: pipeline.Options{
			TrivialLayout:    req.TrivialLayout,
			ReverseToInitial: req.ReverseToInitial,
			RoutingStrategy:  req.RoutingStrategy,
			UseWindow:        req.UseWindow,
			FullCode:         req.FullCode,
			Dependency:       req.Dependency,
			ToVerify:         req.ToVerify,
			Seed:             req.Seed,
		},
	})
	if err != nil {
		l.Error().Err(err).Msg("submitting compile job failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, JobAcceptedResponse{ID: id})
}

// GetJob is the handler for GET /v1/jobs/:id.
func (a *appServer) GetJob(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	id := c.Param("id")
	job, ok := a.svc.Get(id)
	if !ok {
		l.Debug().Str("id", id).Msg("job not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	resp := JobStatusResponse{ID: job.ID, Status: job.Status, Error: job.Err}
	if job.Result != nil {
		resp.Compact = job.Result.Compact
		resp.Full = job.Result.Full
		resp.Timing = &job.Result.Timing
	}
	c.JSON(http.StatusOK, resp)
}
