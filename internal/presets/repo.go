package presets

import (
	"context"
	"errors"
	"fmt"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/tracing"
	"github.com/vik-ma/local-lift-log-sub002/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the postgres backed preset store.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context, group units.Group) (_ []sumcalc.Preset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.presets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("group", group.String()))

	t, err := tableFor(group)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`
			SELECT
			    id, name, %s, %s, is_favorite
			FROM %s
			ORDER BY is_favorite DESC, name
		`, t.magnitudeCol, t.unitCol, t.name),
	)
	if err != nil {
		return nil, fmt.Errorf("presets [query]: %w", err)
	}
	defer rows.Close()

	presets := []sumcalc.Preset{}
	for rows.Next() {
		p := sumcalc.Preset{Group: group}
		if err := rows.Scan(&p.ID, &p.Name, &p.Magnitude, &p.Unit, &p.Favorite); err != nil {
			return nil, fmt.Errorf("presets [rows scan]: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presets [rows error]: %w", err)
	}

	return presets, nil
}

func (r *Repo) Get(ctx context.Context, group units.Group, id int64) (_ sumcalc.Preset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.presets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	t, err := tableFor(group)
	if err != nil {
		return sumcalc.Preset{}, err
	}

	p := sumcalc.Preset{Group: group}
	err = r.db.QueryRow(
		ctx,
		fmt.Sprintf(`
			SELECT
			    id, name, %s, %s, is_favorite
			FROM %s
			WHERE id = $1
		`, t.magnitudeCol, t.unitCol, t.name),
		id,
	).Scan(&p.ID, &p.Name, &p.Magnitude, &p.Unit, &p.Favorite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sumcalc.Preset{}, ErrPresetNotFound
		}
		return sumcalc.Preset{}, fmt.Errorf("preset [query row]: %w", err)
	}

	return p, nil
}

func (r *Repo) Add(ctx context.Context, preset sumcalc.Preset) (_ sumcalc.Preset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.presets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := Validate(preset); err != nil {
		return sumcalc.Preset{}, err
	}
	t, _ := tableFor(preset.Group)

	err = r.db.QueryRow(
		ctx,
		fmt.Sprintf(`
			INSERT INTO %s (name, %s, %s, is_favorite)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, t.name, t.magnitudeCol, t.unitCol),
		preset.Name, preset.Magnitude, preset.Unit, preset.Favorite,
	).Scan(&preset.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return sumcalc.Preset{}, fmt.Errorf("%w: %s", ErrPresetExists, preset.Name)
		}
		return sumcalc.Preset{}, fmt.Errorf("add preset [query row]: %w", err)
	}

	return preset, nil
}

func (r *Repo) Delete(ctx context.Context, group units.Group, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.presets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	t, err := tableFor(group)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name), id)
	if err != nil {
		return fmt.Errorf("delete preset [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPresetNotFound
	}

	return nil
}
