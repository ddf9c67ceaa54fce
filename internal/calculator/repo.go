package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSessionNotFound = errors.New("calculation session not found")

// SessionRecord is a stored calculation string of one owner and unit group.
type SessionRecord struct {
	OwnerID           string      `json:"ownerId"`
	Group             units.Group `json:"group"`
	CalculationString string      `json:"calculationString"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, ownerID string, group units.Group) (_ SessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calculator.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group", group.String()))

	record := SessionRecord{
		OwnerID: ownerID,
		Group:   group,
	}
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
			    calculation_string, updated_at
			FROM calculation_session
			WHERE owner_id = $1 AND unit_group = $2
		`,
		ownerID, group.String(),
	).Scan(
		&record.CalculationString,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SessionRecord{}, ErrSessionNotFound
		}
		return SessionRecord{}, fmt.Errorf("calculation session [query row]: %w", err)
	}

	return record, nil
}

func (r *Repo) Upsert(ctx context.Context, record SessionRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calculator.sessions.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group", record.Group.String()))

	_, err = r.db.Exec(
		ctx,
		`
			INSERT INTO calculation_session (owner_id, unit_group, calculation_string, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (owner_id, unit_group)
			DO UPDATE SET calculation_string = EXCLUDED.calculation_string, updated_at = EXCLUDED.updated_at
		`,
		record.OwnerID, record.Group.String(), record.CalculationString, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert calculation session [exec]: %w", err)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, ownerID string, group units.Group) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calculator.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM calculation_session WHERE owner_id = $1 AND unit_group = $2`,
		ownerID, group.String(),
	)
	if err != nil {
		return fmt.Errorf("delete calculation session [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}
