package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// SpecHandler exposes read-only views of the specification rules that apply
// to a product model.
type SpecHandler struct {
	specs  spec.Repository
	logger logging.Logger
}

// NewSpecHandler constructs a SpecHandler.
func NewSpecHandler(specs spec.Repository, logger logging.Logger) *SpecHandler {
	return &SpecHandler{specs: specs, logger: logger.Named("spec_handler")}
}

// ruleView renders one specification entry for display.
type ruleView struct {
	TestTypeName string          `json:"tipo_teste"`
	Kind         ltypes.RuleKind `json:"kind"`
	Description  string          `json:"descricao"`
}

// modelRulesView is the response for GET /api/v1/models/:id/rules.
type modelRulesView struct {
	ModelID     common.ModelID `json:"modelo"`
	RuleSetName string         `json:"conjunto,omitempty"`
	Rules       []ruleView     `json:"regras"`
	Legacy      []ruleView     `json:"regras_legadas,omitempty"`
}

func toRuleViews(entries []spec.Entry) []ruleView {
	views := make([]ruleView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ruleView{
			TestTypeName: e.TestTypeName,
			Kind:         e.Rule.Kind(),
			Description:  e.Rule.Describe(),
		})
	}
	return views
}

// ModelRules handles GET /api/v1/models/:id/rules.  Returns the linked
// rule-set entries plus any legacy per-model entries; a model with neither
// yields an empty rule list rather than a 404, matching resolution semantics
// where a missing specification is not an error.
func (h *SpecHandler) ModelRules(c *gin.Context) {
	modelParam := c.Param("id")
	if modelParam == "" {
		respondError(c, errors.InvalidParam("id path parameter is required"))
		return
	}
	modelID := common.ModelID(modelParam)

	view := modelRulesView{ModelID: modelID, Rules: []ruleView{}}

	ruleSet, err := h.specs.RuleSetForModel(c.Request.Context(), modelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ruleSet != nil {
		view.RuleSetName = ruleSet.Name
		view.Rules = toRuleViews(ruleSet.Entries)
	}

	legacy, err := h.specs.LegacyEntriesForModel(c.Request.Context(), modelID)
	if err != nil {
		respondError(c, err)
		return
	}
	view.Legacy = toRuleViews(legacy)

	respond(c, http.StatusOK, view)
}
