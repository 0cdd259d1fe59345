package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/application/report"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// LaudoHandler serves the laudo aggregate endpoints.
type LaudoHandler struct {
	reports   *report.Service
	documents *report.DocumentService
	logger    logging.Logger
}

// NewLaudoHandler constructs a LaudoHandler.  documents may be nil when
// attachment storage is disabled; the document routes are then not mounted.
func NewLaudoHandler(reports *report.Service, documents *report.DocumentService, logger logging.Logger) *LaudoHandler {
	return &LaudoHandler{
		reports:   reports,
		documents: documents,
		logger:    logger.Named("laudo_handler"),
	}
}

// createLaudoRequest is the wire shape for POST /api/v1/laudos.
type createLaudoRequest struct {
	EmployeeID   common.EmployeeID  `json:"funcionario" binding:"required"`
	ModelID      common.ModelID     `json:"modelo" binding:"required"`
	SectorID     common.SectorID    `json:"setor" binding:"required"`
	MaterialRef  string             `json:"material,omitempty"`
	MaterialType string             `json:"tipo_material,omitempty"`
	Notes        string             `json:"observacoes,omitempty"`
	Tests        []ltypes.TestInput `json:"testes" binding:"required"`
}

// testView is the wire shape of a test record inside a laudo.
type testView struct {
	ID           common.ID     `json:"id"`
	TestTypeName string        `json:"tipo_teste"`
	Result       *float64      `json:"resultado,omitempty"`
	Status       ltypes.Status `json:"status"`
	Description  string        `json:"descricao,omitempty"`
	MachineID    string        `json:"maquina,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// laudoView is the wire shape of a full laudo.
type laudoView struct {
	ID         common.ID         `json:"id"`
	Code       string            `json:"codigo"`
	Status     ltypes.Status     `json:"status"`
	EmployeeID common.EmployeeID `json:"funcionario"`
	ModelID    common.ModelID    `json:"modelo"`
	MaterialID common.ID         `json:"material_id,omitempty"`
	SectorID   common.SectorID   `json:"setor"`
	Notes      string            `json:"observacoes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Tests      []testView        `json:"testes"`
}

func toLaudoView(l *laudo.Laudo) laudoView {
	view := laudoView{
		ID:         l.ID,
		Code:       l.Code,
		Status:     l.Status,
		EmployeeID: l.Context.EmployeeID,
		ModelID:    l.Context.ModelID,
		MaterialID: l.Context.MaterialID,
		SectorID:   l.Context.SectorID,
		Notes:      l.Notes,
		CreatedAt:  l.CreatedAt,
		Tests:      make([]testView, 0, len(l.Tests)),
	}
	for _, t := range l.Tests {
		view.Tests = append(view.Tests, testView{
			ID:           t.ID,
			TestTypeName: t.TestTypeName,
			Result:       t.Result,
			Status:       t.Status,
			Description:  t.Description,
			MachineID:    t.MachineID,
			CreatedAt:    t.CreatedAt,
		})
	}
	return view
}

// Create handles POST /api/v1/laudos.
func (h *LaudoHandler) Create(c *gin.Context) {
	var req createLaudoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}

	result, err := h.reports.Create(c.Request.Context(), report.CreateRequest{
		EmployeeID:   req.EmployeeID,
		ModelID:      req.ModelID,
		SectorID:     req.SectorID,
		MaterialRef:  req.MaterialRef,
		MaterialType: req.MaterialType,
		Notes:        req.Notes,
		Tests:        req.Tests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

// Get handles GET /api/v1/laudos/:id.
func (h *LaudoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	l, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toLaudoView(l))
}

// Delete handles DELETE /api/v1/laudos/:id.
func (h *LaudoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

// AddTest handles POST /api/v1/laudos/:id/tests.
func (h *LaudoHandler) AddTest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input ltypes.TestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.InvalidParam("invalid request body").WithCause(err))
		return
	}

	result, err := h.reports.AddTest(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

// AttachDocument handles POST /api/v1/laudos/:id/documentos (multipart upload).
func (h *LaudoHandler) AttachDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		respondError(c, errors.InvalidParam("multipart field 'arquivo' is required").WithCause(err))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeDocumentStoreError, "failed to read uploaded file"))
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	err = h.documents.Attach(c.Request.Context(), id, fileHeader.Filename, contentType, f, fileHeader.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("document attached",
		logging.String("laudo_id", string(id)),
		logging.String("name", fileHeader.Filename),
		logging.Int64("size", fileHeader.Size))
	respond(c, http.StatusCreated, gin.H{"name": fileHeader.Filename, "size": fileHeader.Size})
}

// ListDocuments handles GET /api/v1/laudos/:id/documentos.
func (h *LaudoHandler) ListDocuments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	docs, err := h.documents.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, docs)
}

// DocumentURL handles GET /api/v1/laudos/:id/documentos/:name, returning a
// presigned download URL instead of proxying object bytes.
func (h *LaudoHandler) DocumentURL(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	name := c.Param("name")
	if name == "" {
		respondError(c, errors.InvalidParam("name path parameter is required"))
		return
	}

	url, err := h.documents.URL(c.Request.Context(), id, name, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"url": url})
}
