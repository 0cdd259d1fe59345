package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/application/report"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// TestHandler serves the standalone test-record endpoints.
type TestHandler struct {
	reports *report.Service
	logger  logging.Logger
}

// NewTestHandler constructs a TestHandler.
func NewTestHandler(reports *report.Service, logger logging.Logger) *TestHandler {
	return &TestHandler{reports: reports, logger: logger.Named("test_handler")}
}

// editTestRequest is the wire shape for PUT /api/v1/tests/:id.  Status is
// the explicit fallback applied when the new result cannot be evaluated
// against any rule.
type editTestRequest struct {
	Result *float64      `json:"resultado"`
	Status ltypes.Status `json:"status,omitempty"`
}

// Edit handles PUT /api/v1/tests/:id.  Re-evaluates the stored record with
// the new result and, when the record belongs to a laudo, recomputes the
// laudo status in the same transaction.
func (h *TestHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req editTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		respondError(c, errors.InvalidParam("invalid status value"))
		return
	}

	result, err := h.reports.EditTest(c.Request.Context(), id, req.Result, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
