package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace-api/internal/api/metrics"
	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// ProposalHandler handles HTTP requests for the proposal workflow.
type ProposalHandler struct {
	service ports.ProposalService
}

func NewProposalHandler(service ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

// Create handles POST /v1/jobs/:job_id/proposals.
//
// @Summary      Submit a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        job_id  path      string                 true  "Job id"
// @Param        body    body      createProposalRequest  true  "Proposal"
// @Success      201     {object}  proposalResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /v1/jobs/{job_id}/proposals [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	proposal, err := h.service.Create(c.Request().Context(), ports.CreateProposalInput{
		JobID:        c.Param("job_id"),
		FreelancerID: user.ID,
		CoverLetter:  req.CoverLetter,
		BidAmount:    req.BidAmount,
	})
	if err != nil {
		return err
	}

	metrics.ProposalsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, proposalResponse{Status: "success", Data: proposalData{Proposal: proposal}})
}

// ListByJob handles GET /v1/jobs/:job_id/proposals.
//
// @Summary      List the proposals of a job
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        job_id  path      string  true  "Job id"
// @Success      200     {object}  listProposalsResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/jobs/{job_id}/proposals [get]
func (h *ProposalHandler) ListByJob(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListByJob(c.Request().Context(), c.Param("job_id"), user.ID)
	if err != nil {
		return err
	}

	items := make([]proposalItem, 0, len(list.Items))
	for _, v := range list.Items {
		items = append(items, proposalItem{Proposal: v.Proposal, Freelancer: v.Freelancer})
	}

	return c.JSON(http.StatusOK, listProposalsResponse{
		Status: "success",
		Totals: list.Total,
		Data:   proposalsData{Proposals: items},
	})
}

// UpdateStatus handles PATCH /v1/proposals/:id/status.
//
// @Summary      Change a proposal's status
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Proposal id"
// @Param        body  body      updateProposalStatusRequest  true  "New status"
// @Success      200   {object}  proposalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/proposals/{id}/status [patch]
func (h *ProposalHandler) UpdateStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProposalStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	status, err := domain.ParseProposalStatus(req.Status)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), user.ID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, proposalResponse{Status: "success", Data: proposalData{Proposal: updated}})
}
