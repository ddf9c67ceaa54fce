//go:build integration

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vik-ma/local-lift-log-sub002/internal/calculator"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) barbellID(ctx context.Context) int64 {
	var list []sumcalc.Preset
	require.Equal(s.T(), http.StatusOK, s.doJSON(ctx, "GET", "/presets/weight", nil, &list))
	for _, p := range list {
		if p.Name == "Barbell" {
			return p.ID
		}
	}
	s.T().Fatal("default barbell preset missing")
	return 0
}

func (s *IntegrationTestSuite) TestCalculator_SessionLifecycle() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	owner := "it-" + gofakeit.LetterN(12)
	sessionPath := fmt.Sprintf("/calculator/sessions/%s/weight", owner)

	var loaded calculator.LoadedSession
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "GET", sessionPath, nil, &loaded))
	assert.Empty(t, loaded.Session.Items)

	var item sumcalc.Item
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "POST", "/calculator/items", calculator.ItemRequest{
		Kind:            sumcalc.PresetWeight,
		Group:           units.Weight,
		Unit:            "kg",
		PresetID:        s.barbellID(ctx),
		MultiplierInput: "2",
	}, &item))

	var exprItem sumcalc.Item
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "POST", "/calculator/items", calculator.ItemRequest{
		Kind:       sumcalc.Expression,
		Group:      units.Weight,
		Unit:       "kg",
		Expression: "(10+2.5)*2",
	}, &exprItem))

	session := sumcalc.NewSession(units.Weight, "kg").
		Append(item).
		Append(exprItem).
		WithTotalMultiplierInput("1.5")

	var record calculator.SessionRecord
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "PUT", sessionPath, session, &record))
	assert.Equal(t, fmt.Sprintf("e[%d]x2,n[25]x1|1.5", item.PresetID), record.CalculationString)

	var stored string
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT calculation_string FROM calculation_session WHERE owner_id = $1 AND unit_group = $2`,
		owner, "weight",
	).Scan(&stored))
	assert.Equal(t, record.CalculationString, stored)

	require.Equal(t, http.StatusOK, s.doJSON(ctx, "GET", sessionPath, nil, &loaded))
	require.Len(t, loaded.Session.Items, 2)
	assert.Equal(t, "kg", loaded.Session.ActiveUnit)
	assert.Equal(t, sumcalc.Number, loaded.Session.Items[1].Kind)
	assert.Equal(t, 65.0, loaded.Totals.Total)
	assert.Equal(t, 97.5, loaded.Totals.Result)

	require.Equal(t, http.StatusOK, s.doJSON(ctx, "GET", sessionPath+"?unit=lbs", nil, &loaded))
	require.Len(t, loaded.Session.Items, 2)
	assert.Equal(t, "lbs", loaded.Session.ActiveUnit)
	assert.Equal(t, "lbs", loaded.Session.Items[0].Unit)

	require.Equal(t, http.StatusNoContent, s.doJSON(ctx, "DELETE", sessionPath, nil, nil))
	require.Equal(t, http.StatusNotFound, s.doJSON(ctx, "DELETE", sessionPath, nil, nil))
}

func (s *IntegrationTestSuite) TestCalculator_Drafts() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	draftPath := fmt.Sprintf("/calculator/drafts/%s/distance", "it-" + gofakeit.LetterN(12))

	exprItem, ok := sumcalc.NewExpressionItem("400*4", "m", "3x")
	require.True(t, ok)
	draft := sumcalc.NewSession(units.Distance, "m").Append(exprItem)

	require.Equal(t, http.StatusNoContent, s.doJSON(ctx, "PUT", draftPath, draft, nil))

	var loaded calculator.LoadedSession
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "GET", draftPath+"?unit=km", nil, &loaded))
	require.Len(t, loaded.Session.Items, 1)
	assert.Equal(t, "400*4", loaded.Session.Items[0].SourceExpression)
	assert.Equal(t, "3x", loaded.Session.Items[0].MultiplierInput)
	assert.Equal(t, 1.6, loaded.Totals.Total)
}

func (s *IntegrationTestSuite) TestCalculator_DeletedPresetIsSkipped() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	var added sumcalc.Preset
	require.Equal(t, http.StatusCreated, s.doJSON(ctx, "POST", "/presets/weight", sumcalc.Preset{
		Name:      "Trap Bar " + gofakeit.UUID(),
		Magnitude: 25,
		Unit:      "kg",
	}, &added))

	calculationString := fmt.Sprintf("n[20]x2,e[%d]x1", added.ID)
	var decoded calculator.LoadedSession
	require.Equal(t, http.StatusOK, s.doJSON(ctx, "POST", "/calculator/decode", calculator.DecodeRequest{
		CalculationString: calculationString,
		Group:             units.Weight,
	}, &decoded))
	assert.Zero(t, decoded.Skipped)
	assert.Equal(t, 65.0, decoded.Totals.Total)

	require.Equal(t, http.StatusNoContent, s.doJSON(ctx, "DELETE", fmt.Sprintf("/presets/weight/%d", added.ID), nil, nil))

	require.Equal(t, http.StatusOK, s.doJSON(ctx, "POST", "/calculator/decode", calculator.DecodeRequest{
		CalculationString: calculationString,
		Group:             units.Weight,
	}, &decoded))
	assert.Equal(t, 1, decoded.Skipped)
	assert.Equal(t, 40.0, decoded.Totals.Total)
}
