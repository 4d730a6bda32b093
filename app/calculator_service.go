// Package app wires the engine together: validation, the two physical
// models, the noise budget, and the forward/inverse radiometer
// solvers.
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"senscalc/domain/atmosphere"
	"senscalc/domain/core"
	"senscalc/domain/instrument"
	"senscalc/domain/noise"
	"senscalc/domain/obs"
	"senscalc/domain/units"
	"senscalc/internal"
	apperrors "senscalc/internal/errors"
	"senscalc/internal/observability"
	"senscalc/internal/validation"
	"senscalc/models"
	"senscalc/ports"
)

// CalculatorService is the duality calculator: the forward solver
// (integration time → sensitivity) and the closed-form inverse
// (target sensitivity → integration time) over one shared noise
// budget. Each invocation is independent and touches no shared
// mutable state, so the service is safe for concurrent use.
type CalculatorService struct {
	logger    *internal.Logger
	collector *observability.CalculatorCollector
	history   ports.CalculationHistoryRepository
}

// NewCalculatorService builds a calculator. collector and history may
// be nil; metrics and persistence are then skipped.
func NewCalculatorService(logger *internal.Logger, collector *observability.CalculatorCollector, history ports.CalculationHistoryRepository) *CalculatorService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &CalculatorService{
		logger:    logger,
		collector: collector,
		history:   history,
	}
}

// EvaluateBudget runs validation, the atmosphere and instrument models
// (independent of each other), and the noise budget combination. Every
// failure propagates immediately; nothing is masked or clamped.
func EvaluateBudget(params obs.ObservationParameters, cond obs.AtmosphericConditions, spec obs.InstrumentSpecification) (noise.BudgetResult, error) {
	if err := validation.CheckRequest(params, cond, spec); err != nil {
		return noise.BudgetResult{}, err
	}

	atm, err := atmosphere.Evaluate(params.FrequencyHz, params.ElevationDeg, cond)
	if err != nil {
		return noise.BudgetResult{}, err
	}
	inst, err := instrument.Evaluate(params.FrequencyHz, spec)
	if err != nil {
		return noise.BudgetResult{}, err
	}
	return noise.Combine(atm, inst, params.Mode, params.PolarizationCount)
}

// SensitivityJy applies the radiometer relation to a computed budget:
//
//	S = SEFD · penalty / (η_chain · √(n_pol · B · t))
//
// returning the 1σ noise level in Jansky for an integration time in
// seconds.
func SensitivityJy(b noise.BudgetResult, nPol int, bandwidthHz, tIntS float64) (float64, error) {
	bt := bandwidthHz * tIntS
	if bt <= 0 {
		return 0, core.NewDomainError("bandwidth*t_int", bt, "bandwidth*t_int > 0")
	}
	sefdJy := units.SIToJy(b.SEFD)
	s := sefdJy * b.ModePenalty / (b.EfficiencyChain * math.Sqrt(float64(nPol)*bt))
	return s, nil
}

// IntegrationTimeS is the analytic inverse of SensitivityJy:
//
//	t = (SEFD · penalty / (S · η_chain))² / (n_pol · B)
//
// No iteration is needed; if a future noise model loses the closed
// form, this is the place a bounded bisection with a convergence
// budget and core.ErrNonConvergence would live.
func IntegrationTimeS(b noise.BudgetResult, nPol int, bandwidthHz, targetJy float64) (float64, error) {
	if targetJy <= 0 {
		return 0, core.NewDomainError("target sensitivity", targetJy, "sensitivity > 0")
	}
	if bandwidthHz <= 0 {
		return 0, core.NewDomainError("bandwidth", bandwidthHz, "bandwidth > 0")
	}
	sefdJy := units.SIToJy(b.SEFD)
	x := sefdJy * b.ModePenalty / (targetJy * b.EfficiencyChain)
	return x * x / (float64(nPol) * bandwidthHz), nil
}

// Solve handles one boundary request: it picks the forward or inverse
// branch from which of {t_int, sensitivity} is the unknown, runs the
// pipeline, and returns the flat result. The error, if any, is the
// first lower-layer failure wrapped with its kind.
func (s *CalculatorService) Solve(ctx context.Context, req models.CalculationRequest) (*models.CalculationResult, error) {
	params, cond, spec := req.ToDomain()
	if params.SolvesForTime() {
		return s.solve(ctx, models.SolvedIntegrationTime, params, cond, spec)
	}
	return s.solve(ctx, models.SolvedSensitivity, params, cond, spec)
}

// SolveSensitivity forces the forward branch regardless of request
// shape; the request must carry an integration time.
func (s *CalculatorService) SolveSensitivity(ctx context.Context, req models.CalculationRequest) (*models.CalculationResult, error) {
	params, cond, spec := req.ToDomain()
	return s.solve(ctx, models.SolvedSensitivity, params, cond, spec)
}

// SolveTime forces the inverse branch; the request must carry a
// target sensitivity.
func (s *CalculatorService) SolveTime(ctx context.Context, req models.CalculationRequest) (*models.CalculationResult, error) {
	params, cond, spec := req.ToDomain()
	return s.solve(ctx, models.SolvedIntegrationTime, params, cond, spec)
}

func (s *CalculatorService) solve(ctx context.Context, operation string, params obs.ObservationParameters, cond obs.AtmosphericConditions, spec obs.InstrumentSpecification) (*models.CalculationResult, error) {
	start := time.Now()

	res, err := s.compute(operation, params, cond, spec)
	code := "ok"
	if err != nil {
		appErr := apperrors.FromDomain(err)
		code = appErr.Code
		s.collector.Observe(operation, code, start)
		s.logger.Debug("calculation failed: op=%s code=%s err=%v", operation, code, err)
		return nil, appErr
	}
	s.collector.Observe(operation, code, start)

	if s.history != nil {
		if err := s.history.Save(ctx, res.Record()); err != nil {
			// History is a convenience of the web layer; a storage
			// failure must not fail a correct calculation.
			s.logger.Warn("failed to persist calculation %s: %v", res.ID, err)
		}
	}
	return res, nil
}

func (s *CalculatorService) compute(operation string, params obs.ObservationParameters, cond obs.AtmosphericConditions, spec obs.InstrumentSpecification) (*models.CalculationResult, error) {
	budget, err := EvaluateBudget(params, cond, spec)
	if err != nil {
		return nil, err
	}

	res := &models.CalculationResult{
		ID:     core.NewCalculationID().String(),
		Solved: operation,

		ObsFreqGHz:   units.HzToGHz(params.FrequencyHz),
		BandwidthGHz: units.HzToGHz(params.BandwidthHz),
		ElevationDeg: params.ElevationDeg,
		NPol:         params.PolarizationCount,
		Mode:         params.Mode.String(),

		SystemTempK:        budget.SystemTempK,
		ReceiverContribK:   budget.ReceiverContribK,
		CMBContribK:        budget.CMBContribK,
		AtmosphereContribK: budget.AtmosphereContribK,
		SEFDJy:             units.SIToJy(budget.SEFD),

		ApertureEff:     budget.ApertureEfficiency,
		RuzeFactor:      budget.RuzeFactor,
		EfficiencyChain: budget.EfficiencyChain,
		ModePenalty:     budget.ModePenalty,

		Airmass:        budget.Airmass,
		ZenithTau:      budget.ZenithTau,
		LineOfSightTau: budget.LineOfSightTau,
		Transmission:   budget.Transmission,
		SkyTempK:       budget.SkyTempK,
		PWVmm:          budget.PWVmm,

		CreatedAt: time.Now().UTC(),
	}

	switch operation {
	case models.SolvedSensitivity:
		sens, err := SensitivityJy(budget, params.PolarizationCount, params.BandwidthHz, params.IntegrationTimeS)
		if err != nil {
			return nil, err
		}
		res.Value = units.JyToMJy(sens)
		res.Unit = "mJy"
		res.SensitivityMJy = res.Value
		res.IntegrationTimeS = params.IntegrationTimeS

	case models.SolvedIntegrationTime:
		tInt, err := IntegrationTimeS(budget, params.PolarizationCount, params.BandwidthHz, params.TargetSensitivityJy)
		if err != nil {
			return nil, err
		}
		res.Value = tInt
		res.Unit = "s"
		res.IntegrationTimeS = tInt
		res.SensitivityMJy = units.JyToMJy(params.TargetSensitivityJy)

	default:
		return nil, fmt.Errorf("unknown operation %q", operation)
	}

	return res, nil
}
