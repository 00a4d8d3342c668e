package triage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSymptomsRequired = errors.New("symptoms are required")

// AnalyzerInput is passed to every modality analyzer. Raw is the opaque
// modality input taken from the patient profile.
type AnalyzerInput struct {
	Raw        string
	Symptoms   string
	Conditions ConditionSet
	Patient    Patient
}

// Analyzer interfaces are declared here and implemented in internal/agent.
type ECGAnalyzer interface {
	AnalyzeECG(in AnalyzerInput) ECGFindings
}

type EchoAnalyzer interface {
	AnalyzeEcho(in AnalyzerInput) EchoFindings
}

type CTAnalyzer interface {
	AnalyzeCT(in AnalyzerInput) CTFindings
}

type MRIAnalyzer interface {
	AnalyzeMRI(in AnalyzerInput) MRIFindings
}

type ArrhythmiaAnalyzer interface {
	AnalyzeRhythm(in AnalyzerInput) ArrhythmiaFindings
}

// Func adapters, mostly for tests that force a modality result.

type ECGFunc func(AnalyzerInput) ECGFindings

func (f ECGFunc) AnalyzeECG(in AnalyzerInput) ECGFindings { return f(in) }

type EchoFunc func(AnalyzerInput) EchoFindings

func (f EchoFunc) AnalyzeEcho(in AnalyzerInput) EchoFindings { return f(in) }

type CTFunc func(AnalyzerInput) CTFindings

func (f CTFunc) AnalyzeCT(in AnalyzerInput) CTFindings { return f(in) }

type MRIFunc func(AnalyzerInput) MRIFindings

func (f MRIFunc) AnalyzeMRI(in AnalyzerInput) MRIFindings { return f(in) }

type ArrhythmiaFunc func(AnalyzerInput) ArrhythmiaFindings

func (f ArrhythmiaFunc) AnalyzeRhythm(in AnalyzerInput) ArrhythmiaFindings { return f(in) }

// Analyzers groups the modality analyzers. A nil analyzer is treated as an
// unavailable modality and its gate never opens.
type Analyzers struct {
	ECG        ECGAnalyzer
	Echo       EchoAnalyzer
	CT         CTAnalyzer
	MRI        MRIAnalyzer
	Arrhythmia ArrhythmiaAnalyzer
}

// Gate condition sets.
var (
	imagingConditions = []Condition{HeartFailure, AorticStenosis, AorticRegurgitation, MitralRegurgitation, DilatedCardiomyopathy, CoronaryArteryDisease}
	echoConditions    = []Condition{HeartFailure, AorticStenosis, AorticRegurgitation, MitralRegurgitation, DilatedCardiomyopathy}
	ctConditions      = []Condition{AorticStenosis, AorticRegurgitation, CoronaryArteryDisease}
)

type Service interface {
	// Process runs one triage. It is total over its input, "" included;
	// rejecting empty symptoms is the caller's job (see Request.Validate).
	Process(ctx context.Context, req Request) *Result
}

type service struct {
	analyzers Analyzers
	patient   Patient
	logger    *zap.Logger
}

// NewService builds the orchestrator. patient is used for requests that do
// not carry their own profile.
func NewService(analyzers Analyzers, patient Patient, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		analyzers: analyzers,
		patient:   patient,
		logger:    logger,
	}
}

// Validate rejects requests without symptom text.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Symptoms) == "" {
		return ErrSymptomsRequired
	}
	return nil
}

// Process acts as the orchestrator: classify, gate the analyzers, aggregate, plan.
func (s *service) Process(ctx context.Context, req Request) *Result {
	start := time.Now()
	res := &Result{
		ID:         uuid.New(),
		Symptoms:   req.Symptoms,
		Attachment: req.Attachment,
		CreatedAt:  start,
	}

	log := s.logger.With(zap.String("run_id", res.ID.String()))
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}

	patient := s.patient
	if req.Patient != nil {
		patient = *req.Patient
	}

	// 1. Classify
	conditions := Classify(req.Symptoms)
	res.Conditions = conditions.Sorted()
	s.advance(log, res, StageClassified, start, zap.Any("conditions", res.Conditions))

	in := AnalyzerInput{Symptoms: req.Symptoms, Conditions: conditions, Patient: patient}

	// 2. ECG, and MRI only alongside ECG
	if conditions.Has(HeartAttack) && patient.ECGData != "" && s.analyzers.ECG != nil {
		in.Raw = patient.ECGData
		ecg := s.analyzers.ECG.AnalyzeECG(in)
		res.Findings.ECG = &ecg
		s.ran(log, ModalityECG)

		if patient.MRIData != "" && s.analyzers.MRI != nil {
			in.Raw = patient.MRIData
			mri := s.analyzers.MRI.AnalyzeMRI(in)
			res.Findings.MRI = &mri
			s.ran(log, ModalityMRI)
		}
	}
	s.advance(log, res, StageECGGated, start)

	// 3. Imaging
	if conditions.HasAny(imagingConditions...) {
		if conditions.HasAny(echoConditions...) && s.analyzers.Echo != nil {
			in.Raw = patient.EchoData
			echo := s.analyzers.Echo.AnalyzeEcho(in)
			res.Findings.Echo = &echo
			s.ran(log, ModalityEcho)
		}
		if conditions.HasAny(ctConditions...) && s.analyzers.CT != nil {
			in.Raw = patient.CTData
			ct := s.analyzers.CT.AnalyzeCT(in)
			res.Findings.CT = &ct
			s.ran(log, ModalityCT)
		}
	}
	s.advance(log, res, StageImagingGated, start)

	// 4. Rhythm
	if conditions.Has(CardiacArrhythmia) && patient.RhythmStrip != nil && s.analyzers.Arrhythmia != nil {
		in.Raw = ""
		a := s.analyzers.Arrhythmia.AnalyzeRhythm(in)
		res.Findings.Arrhythmia = &a
		s.ran(log, ModalityArrhythmia)
	}
	s.advance(log, res, StageRhythmGated, start)

	ev := Evidence{Conditions: conditions, Findings: res.Findings, Patient: patient}

	// 5. Diagnose
	res.Diagnosis, res.Rule = Diagnose(ev)
	s.advance(log, res, StageAggregated, start, zap.String("diagnosis", res.Diagnosis), zap.String("rule", res.Rule))

	// 6. Plan
	res.TreatmentPlan = PlanTreatment(res.Diagnosis, ev)
	s.advance(log, res, StagePlanned, start)

	s.advance(log, res, StageDone, start, zap.Strings("modalities", res.Findings.Keys()))
	runsTotal.WithLabelValues(res.Rule).Inc()
	runDuration.Observe(time.Since(start).Seconds())
	return res
}

func (s *service) advance(log *zap.Logger, res *Result, stage Stage, start time.Time, fields ...zap.Field) {
	res.Stages = append(res.Stages, stage)
	fields = append(fields, zap.String("stage", string(stage)), zap.Duration("elapsed", time.Since(start)))
	log.Debug("triage stage complete", fields...)
}

func (s *service) ran(log *zap.Logger, modality string) {
	modalityRunsTotal.WithLabelValues(modality).Inc()
	log.Info("modality analyzed", zap.String("modality", modality))
}
