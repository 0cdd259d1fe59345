// Package report implements the application service that orchestrates laudo
// registration: rule resolution, evaluation, persistence, status rollup, and
// event notification.  Domain rules live in internal/domain; this layer only
// sequences them against the repository ports.
package report

import (
	"context"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/material"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Notifier is the outbound event boundary.  Publication is fire-and-forget:
// implementations log failures but never surface them into the request path,
// and the core performs no retry.
type Notifier interface {
	LaudoCreated(ctx context.Context, l *laudo.Laudo)
	LaudoStatusChanged(ctx context.Context, laudoID common.ID, code string, from, to ltypes.Status)
}

type nopNotifier struct{}

func (nopNotifier) LaudoCreated(context.Context, *laudo.Laudo) {}
func (nopNotifier) LaudoStatusChanged(context.Context, common.ID, string, ltypes.Status, ltypes.Status) {
}

// NopNotifier returns a Notifier that drops all events.
func NopNotifier() Notifier { return nopNotifier{} }

// Service is the report application service.
type Service struct {
	laudos    laudo.Repository
	tests     laudo.TestRepository
	resolver  *spec.Resolver
	materials *material.Resolver
	codes     *laudo.CodeAssigner
	clock     laudo.Clock
	notifier  Notifier
	logger    logging.Logger
}

// NewService wires the report service.  notifier may be nil, in which case
// events are dropped.
func NewService(
	laudos laudo.Repository,
	tests laudo.TestRepository,
	resolver *spec.Resolver,
	materials *material.Resolver,
	codes *laudo.CodeAssigner,
	clock laudo.Clock,
	notifier Notifier,
	logger logging.Logger,
) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if clock == nil {
		clock = laudo.SystemClock()
	}
	return &Service{
		laudos:    laudos,
		tests:     tests,
		resolver:  resolver,
		materials: materials,
		codes:     codes,
		clock:     clock,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRequest carries the shared context and the initial batch of test
// inputs for laudo creation.
type CreateRequest struct {
	EmployeeID   common.EmployeeID
	ModelID      common.ModelID
	SectorID     common.SectorID
	MaterialRef  string
	MaterialType string
	Notes        string
	Tests        []ltypes.TestInput
}

// Create registers a new laudo with its initial batch of tests.
//
// Each input is resolved and evaluated independently; the laudo's status is
// then derived from the batch by the rollup rule and everything is persisted
// in a single transaction by the repository.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ltypes.CreateResult, error) {
	if len(req.Tests) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTestBatch, "laudo requires at least one test input")
	}

	sharedCtx := laudo.SharedContext{
		EmployeeID: req.EmployeeID,
		ModelID:    req.ModelID,
		SectorID:   req.SectorID,
	}
	// Validate before resolving the material so a rejected request leaves
	// nothing behind.
	if err := sharedCtx.Validate(); err != nil {
		return nil, err
	}

	mat, err := s.materials.ResolveOrCreate(ctx, req.MaterialRef, req.SectorID, req.MaterialType)
	if err != nil {
		return nil, err
	}
	sharedCtx.MaterialID = mat.ID

	code, err := s.codes.NextCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	l := &laudo.Laudo{
		ID:        common.NewID(),
		Code:      code,
		Context:   sharedCtx,
		Notes:     req.Notes,
		CreatedAt: now,
	}

	verdicts := make([]ltypes.TestVerdict, 0, len(req.Tests))
	for _, input := range req.Tests {
		rec, err := s.buildTestRecord(ctx, input, sharedCtx, &l.ID, now)
		if err != nil {
			return nil, err
		}
		l.Tests = append(l.Tests, rec)
		verdicts = append(verdicts, ltypes.TestVerdict{
			TestID:       rec.ID,
			TestTypeName: rec.TestTypeName,
			Result:       rec.Result,
			Status:       rec.Status,
			Description:  rec.Description,
		})
	}

	l.Recompute()

	if err := s.laudos.Create(ctx, l); err != nil {
		s.logger.Error("failed to persist laudo",
			logging.Err(err),
			logging.String("code", code))
		return nil, err
	}

	s.notifier.LaudoCreated(ctx, l)

	total, approved, rejected := l.Counts()
	s.logger.Info("laudo created",
		logging.String("laudo_id", string(l.ID)),
		logging.String("code", code),
		logging.String("status", string(l.Status)),
		logging.Int("total", total))

	return &ltypes.CreateResult{
		LaudoID:  l.ID,
		Code:     code,
		Status:   l.Status,
		Total:    total,
		Approved: approved,
		Rejected: rejected,
		Tests:    verdicts,
	}, nil
}

// AddTest evaluates and attaches one more test to an existing laudo,
// inheriting the laudo's shared context for fields the input leaves unset,
// and re-derives the rollup status.
func (s *Service) AddTest(ctx context.Context, laudoID common.ID, input ltypes.TestInput) (*ltypes.MutationResult, error) {
	l, err := s.laudos.FindByID(ctx, laudoID)
	if err != nil {
		return nil, err
	}

	inherited := l.Context
	if input.EmployeeID != "" {
		inherited.EmployeeID = input.EmployeeID
	}
	if input.ModelID != "" {
		inherited.ModelID = input.ModelID
	}
	if input.SectorID != "" {
		inherited.SectorID = input.SectorID
	}
	if input.MaterialRef != "" {
		mat, err := s.materials.ResolveOrCreate(ctx, input.MaterialRef, inherited.SectorID, "")
		if err != nil {
			return nil, err
		}
		inherited.MaterialID = mat.ID
	}

	rec, err := s.buildTestRecord(ctx, input, inherited, &l.ID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	before := laudo.Rollup(l.Tests)
	after := laudo.Rollup(append(l.Tests, rec))

	if err := s.laudos.AttachTest(ctx, l.ID, rec, after); err != nil {
		return nil, err
	}

	if before != after {
		s.notifier.LaudoStatusChanged(ctx, l.ID, l.Code, before, after)
	}

	return &ltypes.MutationResult{
		TestID:      rec.ID,
		TestStatus:  rec.Status,
		LaudoID:     l.ID,
		LaudoStatus: after,
		Description: rec.Description,
	}, nil
}

// EditTest replaces a test's numeric result, recomputes its status against
// the re-resolved rule, and, when the test is owned by a laudo, re-derives
// and persists that laudo's rollup status in the same transaction.
//
// Rule lookup is keyed by the test's stored test-type name; renaming a
// test-type therefore breaks resolution for existing records.
func (s *Service) EditTest(ctx context.Context, testID common.ID, newResult *float64, fallback ltypes.Status) (*ltypes.MutationResult, error) {
	rec, err := s.tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	rule, err := s.resolver.Resolve(ctx, rec.ModelID, rec.TestTypeName)
	if err != nil {
		return nil, err
	}

	verdict := spec.Evaluate(newResult, rule)
	rec.Result = newResult
	rec.Status = spec.ResolveStatus(verdict, fallback)
	rec.Description = ""
	if verdict != nil {
		rec.Description = verdict.Description
	}
	rec.UpdatedAt = s.clock.Now()

	if !rec.Owned() {
		if err := s.tests.Update(ctx, rec); err != nil {
			return nil, err
		}
		return &ltypes.MutationResult{
			TestID:      rec.ID,
			TestStatus:  rec.Status,
			Description: rec.Description,
		}, nil
	}

	laudoID := *rec.LaudoID
	siblings, err := s.tests.ListByLaudo(ctx, laudoID)
	if err != nil {
		return nil, err
	}

	before := laudo.Rollup(siblings)
	for i, sib := range siblings {
		if sib.ID == rec.ID {
			siblings[i] = rec
		}
	}
	after := laudo.Rollup(siblings)

	if err := s.tests.UpdateWithLaudoStatus(ctx, rec, laudoID, after); err != nil {
		return nil, err
	}

	if before != after {
		l, err := s.laudos.FindByID(ctx, laudoID)
		code := ""
		if err == nil {
			code = l.Code
		}
		s.notifier.LaudoStatusChanged(ctx, laudoID, code, before, after)
	}

	return &ltypes.MutationResult{
		TestID:      rec.ID,
		TestStatus:  rec.Status,
		LaudoID:     laudoID,
		LaudoStatus: after,
		Description: rec.Description,
	}, nil
}

// Get loads a laudo with its owned tests.
func (s *Service) Get(ctx context.Context, laudoID common.ID) (*laudo.Laudo, error) {
	return s.laudos.FindByID(ctx, laudoID)
}

// Delete hard-deletes a laudo; the store cascades to owned tests.
func (s *Service) Delete(ctx context.Context, laudoID common.ID) error {
	// Surface NotFound before deleting so callers can distinguish a missing
	// laudo from a successful cascade.
	if _, err := s.laudos.FindByID(ctx, laudoID); err != nil {
		return err
	}
	return s.laudos.Delete(ctx, laudoID)
}

// buildTestRecord resolves, evaluates, and assembles one TestRecord.
// A resolution miss is not an error: the status falls back to the input's
// explicit status, or Pending.
func (s *Service) buildTestRecord(
	ctx context.Context,
	input ltypes.TestInput,
	shared laudo.SharedContext,
	owner *common.ID,
	now time.Time,
) (*laudo.TestRecord, error) {
	if input.TestTypeName == "" {
		return nil, errors.Validation("test input requires a test-type name")
	}

	rule, err := s.resolver.Resolve(ctx, shared.ModelID, input.TestTypeName)
	if err != nil {
		return nil, err
	}

	verdict := spec.Evaluate(input.Result, rule)
	status := spec.ResolveStatus(verdict, input.Status)

	rec := &laudo.TestRecord{
		ID:           common.NewID(),
		LaudoID:      owner,
		TestTypeName: input.TestTypeName,
		Result:       input.Result,
		Status:       status,
		EmployeeID:   shared.EmployeeID,
		ModelID:      shared.ModelID,
		MaterialID:   shared.MaterialID,
		SectorID:     shared.SectorID,
		MachineID:    input.MachineID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if verdict != nil {
		rec.Description = verdict.Description
	}
	return rec, nil
}
