package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/api/metrics"
	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), user, ports.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		SkillsRequired: req.SkillsRequired,
		Budget:         req.Budget,
		Deadline:       req.Deadline,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Category).Inc()
	return c.JSON(http.StatusCreated, jobResponse{Message: "Create a new job", Job: job})
}

// List handles GET /v1/jobs.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        category    query     string   false  "Exact category"
// @Param        title       query     string   false  "Case-insensitive title substring"
// @Param        skills      query     []string false  "Required skills (comma separated or repeated)"
// @Param        min_budget  query     number   false  "Minimum budget, inclusive"
// @Param        max_budget  query     number   false  "Maximum budget, inclusive"
// @Param        page        query     int      false  "Page number (default 1)"
// @Param        limit       query     int      false  "Page size (default 10, max 100)"
// @Success      200         {object}  listJobsResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	filter, err := parseJobFilter(c)
	if err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listJobsResponse{
		TotalJobs:  page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		Jobs:       page.Items,
	})
}

// Delete handles DELETE /v1/jobs/:job_id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        job_id  path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{job_id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("job_id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseJobFilter reads the listing predicates from the query string. Skills
// may be repeated or comma separated; skills_required is accepted as an alias
// and its values are added to those of skills.
func parseJobFilter(c echo.Context) (domain.JobFilter, error) {
	var (
		f       domain.JobFilter
		skills  []string
		aliased []string
		min     float64
		max     float64
	)

	err := echo.QueryParamsBinder(c).
		String("category", &f.Category).
		String("title", &f.Title).
		Strings("skills", &skills).
		Strings("skills_required", &aliased).
		Float64("min_budget", &min).
		Float64("max_budget", &max).
		Int("page", &f.Page).
		Int("limit", &f.Limit).
		BindError()
	if err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	for _, s := range append(skills, aliased...) {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				f.Skills = append(f.Skills, part)
			}
		}
	}
	if c.QueryParam("min_budget") != "" {
		f.MinBudget = &min
	}
	if c.QueryParam("max_budget") != "" {
		f.MaxBudget = &max
	}
	return f, nil
}
