package calculator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/expr"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/metrics"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrInvalidUnit   = errors.New("unit does not belong to the unit group")
	ErrInvalidItem   = errors.New("invalid calculation item")
	ErrPresetMissing = errors.New("preset not found")
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=calculator_test

type sessionsRepo interface {
	Get(ctx context.Context, ownerID string, group units.Group) (SessionRecord, error)
	Upsert(ctx context.Context, record SessionRecord) error
	Delete(ctx context.Context, ownerID string, group units.Group) error
}

type draftsStore interface {
	Save(ctx context.Context, ownerID string, session sumcalc.Session) error
	Load(ctx context.Context, ownerID string, group units.Group) (sumcalc.Session, error)
	Delete(ctx context.Context, ownerID string, group units.Group) error
}

type presetsLister interface {
	List(ctx context.Context, group units.Group) ([]sumcalc.Preset, error)
}

// LoadedSession is a session together with its totals, as shown by the calculator.
type LoadedSession struct {
	Session sumcalc.Session `json:"session"`
	Totals  sumcalc.Totals  `json:"totals"`
	// Skipped counts the stored tokens that could not be restored
	Skipped int `json:"skipped"`
}

func newLoadedSession(session sumcalc.Session, skipped int) LoadedSession {
	return LoadedSession{
		Session: session,
		Totals:  sumcalc.Aggregate(session),
		Skipped: skipped,
	}
}

// ItemRequest describes a new list item as entered in the calculator.
type ItemRequest struct {
	Kind            sumcalc.Kind `json:"kind"`
	Group           units.Group  `json:"group"`
	Unit            string       `json:"unit"`
	MultiplierInput string       `json:"multiplierInput"`
	Value           float64      `json:"value"`
	Expression      string       `json:"expression"`
	PresetID        int64        `json:"presetId"`
}

// ItemEditRequest points an existing list item at a new value: Value for
// numbers, Expression for expressions and PresetID for preset items.
// The item keeps its kind and multiplier.
type ItemEditRequest struct {
	Item       sumcalc.Item `json:"item"`
	Group      units.Group  `json:"group"`
	Unit       string       `json:"unit"`
	Value      float64      `json:"value"`
	Expression string       `json:"expression"`
	PresetID   int64        `json:"presetId"`
}

type Service struct {
	repo           sessionsRepo
	drafts         draftsStore
	presets        presetsLister
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo sessionsRepo,
	drafts draftsStore,
	presetsStore presetsLister,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		drafts:         drafts,
		presets:        presetsStore,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func checkUnit(unit string, group units.Group) error {
	if !units.IsValid(unit, group) {
		return fmt.Errorf("%w: [%s] in %s", ErrInvalidUnit, unit, group)
	}
	return nil
}

func (s *Service) Evaluate(ctx context.Context, text string) expr.Validation {
	_, span := tracing.GlobalTracer.Start(ctx, "service.calculator.evaluate")
	defer span.End()

	validation := expr.Validate(text)
	span.SetAttributes(attribute.Bool("valid", validation.IsValid))
	s.metricsManager.CounterEvaluations.WithLabelValues(strconv.FormatBool(validation.IsValid)).Inc()
	return validation
}

// NewItem builds a list item, resolving preset items against the preset store.
func (s *Service) NewItem(ctx context.Context, req ItemRequest) (_ sumcalc.Item, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.new-item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkUnit(req.Unit, req.Group); err != nil {
		return sumcalc.Item{}, err
	}

	params := sumcalc.ItemParams{
		Kind:            req.Kind,
		Unit:            req.Unit,
		Group:           req.Group,
		MultiplierInput: req.MultiplierInput,
		Value:           req.Value,
	}

	switch req.Kind {
	case sumcalc.Expression:
		item, ok := sumcalc.NewExpressionItem(req.Expression, req.Unit, req.MultiplierInput)
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: expression [%s] does not evaluate", ErrInvalidItem, req.Expression)
		}
		return item, nil
	case sumcalc.PresetWeight, sumcalc.PresetDistance:
		lookup, err := presets.LoadLookup(ctx, s.presets, req.Group)
		if err != nil {
			return sumcalc.Item{}, err
		}
		preset, ok := lookup.Lookup(req.PresetID)
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: %d", ErrPresetMissing, req.PresetID)
		}
		params.Preset = &preset
	}

	item, ok := sumcalc.NewItem(params)
	if !ok {
		return sumcalc.Item{}, fmt.Errorf("%w: %s item", ErrInvalidItem, req.Kind)
	}
	return item, nil
}

func (s *Service) EditItem(ctx context.Context, req ItemEditRequest) (_ sumcalc.Item, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.edit-item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkUnit(req.Unit, req.Group); err != nil {
		return sumcalc.Item{}, err
	}

	existing := req.Item.WithMultiplierInput(req.Item.MultiplierInput)
	switch existing.Kind {
	case sumcalc.Number:
		item, ok := sumcalc.NewItem(sumcalc.ItemParams{
			Kind:            sumcalc.Number,
			Unit:            req.Unit,
			Group:           req.Group,
			MultiplierInput: existing.MultiplierInput,
			Value:           req.Value,
		})
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: number %v", ErrInvalidItem, req.Value)
		}
		return item, nil

	case sumcalc.Expression:
		item, ok := sumcalc.ReviseExpression(existing, req.Expression)
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: expression [%s] does not evaluate", ErrInvalidItem, req.Expression)
		}
		return item, nil

	case sumcalc.PresetWeight, sumcalc.PresetDistance:
		lookup, err := presets.LoadLookup(ctx, s.presets, req.Group)
		if err != nil {
			return sumcalc.Item{}, err
		}
		preset, ok := lookup.Lookup(req.PresetID)
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: %d", ErrPresetMissing, req.PresetID)
		}
		item, ok := sumcalc.SwapPreset(existing, preset, req.Unit, req.Group)
		if !ok {
			return sumcalc.Item{}, fmt.Errorf("%w: %s item in a %s session", ErrInvalidItem, existing.Kind, req.Group)
		}
		return item, nil
	}

	return sumcalc.Item{}, fmt.Errorf("%w: %s item", ErrInvalidItem, existing.Kind)
}

// Decode restores a calculation string with the presets currently in the store.
func (s *Service) Decode(ctx context.Context, text, unit string, group units.Group) (_ LoadedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.decode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkUnit(unit, group); err != nil {
		return LoadedSession{}, err
	}

	lookup, err := presets.LoadLookup(ctx, s.presets, group)
	if err != nil {
		return LoadedSession{}, err
	}

	session, skipped := sumcalc.DecodeSession(text, unit, group, lookup)
	if skipped > 0 {
		log.Debugf("decode calculation string: %d tokens skipped", skipped)
		s.metricsManager.CounterDecodeSkippedItems.Add(float64(skipped))
	}
	span.SetAttributes(attribute.Int("items", len(session.Items)), attribute.Int("skipped", skipped))

	return newLoadedSession(session, skipped), nil
}

// LoadSession restores the saved session of the owner. A missing session
// loads as an empty list.
func (s *Service) LoadSession(ctx context.Context, ownerID string, group units.Group, unit string) (_ LoadedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.load-session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkUnit(unit, group); err != nil {
		return LoadedSession{}, err
	}

	record, err := s.repo.Get(ctx, ownerID, group)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return newLoadedSession(sumcalc.NewSession(group, unit), 0), nil
		}
		return LoadedSession{}, fmt.Errorf("get session: %w", err)
	}

	return s.Decode(ctx, record.CalculationString, unit, group)
}

// SaveSession encodes the session and stores the calculation string.
// Nothing is stored when any item cannot be encoded.
func (s *Service) SaveSession(ctx context.Context, ownerID string, session sumcalc.Session) (_ SessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.save-session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := checkUnit(session.ActiveUnit, session.Group); err != nil {
		return SessionRecord{}, err
	}

	encoded, err := sumcalc.Encode(session)
	if err != nil {
		s.metricsManager.CounterEncodeFailures.Inc()
		return SessionRecord{}, err
	}

	record := SessionRecord{
		OwnerID:           ownerID,
		Group:             session.Group,
		CalculationString: encoded,
		UpdatedAt:         s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return SessionRecord{}, fmt.Errorf("upsert session: %w", err)
	}

	s.metricsManager.CounterSessionsSaved.Inc()
	s.metricsManager.HistogramSessionItems.Observe(float64(len(session.Items)))
	log.Debugf("calculation session saved for [%s] [%s]: %s", ownerID, session.Group, encoded)

	return record, nil
}

func (s *Service) DeleteSession(ctx context.Context, ownerID string, group units.Group) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.delete-session")
	defer span.End()

	if err := s.drafts.Delete(ctx, ownerID, group); err != nil {
		log.Warnf("delete draft of [%s] [%s]: %s", ownerID, group, err)
	}
	return s.repo.Delete(ctx, ownerID, group)
}

func (s *Service) SaveDraft(ctx context.Context, ownerID string, session sumcalc.Session) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.save-draft")
	defer span.End()

	if err := checkUnit(session.ActiveUnit, session.Group); err != nil {
		return err
	}
	return s.drafts.Save(ctx, ownerID, session)
}

// LoadDraft returns the in-progress session of the owner. Without a draft,
// the saved session is loaded instead.
func (s *Service) LoadDraft(ctx context.Context, ownerID string, group units.Group, unit string) (_ LoadedSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calculator.load-draft")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	draft, err := s.drafts.Load(ctx, ownerID, group)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			return s.LoadSession(ctx, ownerID, group, unit)
		}
		return LoadedSession{}, fmt.Errorf("load draft: %w", err)
	}

	if unit != "" && unit != draft.ActiveUnit {
		if err := checkUnit(unit, group); err != nil {
			return LoadedSession{}, err
		}
		draft = sumcalc.ConvertSession(draft, unit)
	}

	return newLoadedSession(draft, 0), nil
}
