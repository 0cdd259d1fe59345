// Package laudo defines the status enums and wire-level DTO types shared by
// the laudo (quality report) domain, its HTTP handlers, and the API client.
package laudo

import (
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// Status is the lifecycle state of a test record or a laudo.
// The wire values keep the Portuguese vocabulary used by the laboratory.
type Status string

const (
	StatusPending  Status = "pendente"
	StatusApproved Status = "aprovado"
	StatusRejected Status = "reprovado"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a final state (approved or rejected).
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// RuleKind discriminates the tolerance rule variants.
type RuleKind string

const (
	RuleFixed RuleKind = "fixed"
	RuleRange RuleKind = "range"
	RuleMax   RuleKind = "max"
	RuleMin   RuleKind = "min"
)

// Valid reports whether k is a known rule kind.
func (k RuleKind) Valid() bool {
	switch k {
	case RuleFixed, RuleRange, RuleMax, RuleMin:
		return true
	}
	return false
}

// TestInput is a single per-test submission within a laudo creation or
// add-test request.  Fields left empty inherit the laudo's shared context.
type TestInput struct {
	TestTypeName string             `json:"tipo_teste" binding:"required"`
	Result       *float64           `json:"resultado"`
	MachineID    string             `json:"maquina,omitempty"`
	Status       Status             `json:"status,omitempty"`
	EmployeeID   common.EmployeeID  `json:"funcionario,omitempty"`
	ModelID      common.ModelID     `json:"modelo,omitempty"`
	MaterialRef  string             `json:"material,omitempty"`
	SectorID     common.SectorID    `json:"setor,omitempty"`
}

// TestVerdict is the per-test slice of a laudo creation response.
type TestVerdict struct {
	TestID       common.ID `json:"id"`
	TestTypeName string    `json:"tipo_teste"`
	Result       *float64  `json:"resultado"`
	Status       Status    `json:"status"`
	Description  string    `json:"descricao,omitempty"`
}

// CreateResult is the structure returned to the caller after laudo creation.
type CreateResult struct {
	LaudoID  common.ID     `json:"laudo_id"`
	Code     string        `json:"codigo"`
	Status   Status        `json:"status"`
	Total    int           `json:"total"`
	Approved int           `json:"aprovados"`
	Rejected int           `json:"reprovados"`
	Tests    []TestVerdict `json:"testes"`
}

// MutationResult is returned by add-test and edit-test operations.
type MutationResult struct {
	TestID      common.ID `json:"test_id"`
	TestStatus  Status    `json:"test_status"`
	LaudoID     common.ID `json:"laudo_id,omitempty"`
	LaudoStatus Status    `json:"laudo_status,omitempty"`
	Description string    `json:"descricao,omitempty"`
}

// Document describes an attachment stored for a laudo.
type Document struct {
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
