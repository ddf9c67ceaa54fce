package presets_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*mux.Router, *MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	r := mux.NewRouter()
	presets.NewHandler(store).SetupRoutes(r)
	return r, store
}

func TestHandler_HandleList(t *testing.T) {
	r, store := newTestRouter(t)
	store.EXPECT().List(gomock.Any(), units.Weight).Return(testWeights, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/presets/equipment", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var list []sumcalc.Preset
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, testWeights, list)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/presets/volume", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	store.EXPECT().List(gomock.Any(), units.Distance).Return(nil, errors.New("timeout"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/presets/distance", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleAdd(t *testing.T) {
	r, store := newTestRouter(t)

	body := []byte(`{"id":99,"name":"Trap Bar","magnitude":25,"unit":"kg","group":"distance"}`)
	store.EXPECT().
		Add(gomock.Any(), sumcalc.Preset{Name: "Trap Bar", Magnitude: 25, Unit: "kg", Group: units.Weight}).
		Return(sumcalc.Preset{ID: 3, Name: "Trap Bar", Magnitude: 25, Unit: "kg", Group: units.Weight}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/presets/weight", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t,
		`{"id":3,"name":"Trap Bar","magnitude":25,"unit":"kg","group":"weight","favorite":false}`,
		rr.Body.String(),
	)

	store.EXPECT().Add(gomock.Any(), gomock.Any()).Return(sumcalc.Preset{}, presets.ErrPresetExists)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/presets/weight", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rr.Code)

	store.EXPECT().Add(gomock.Any(), gomock.Any()).Return(sumcalc.Preset{}, presets.ErrInvalidPreset)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/presets/weight", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/presets/weight", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	r, store := newTestRouter(t)

	store.EXPECT().Delete(gomock.Any(), units.Distance, int64(4)).Return(nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/presets/distance/4", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	store.EXPECT().Delete(gomock.Any(), units.Distance, int64(5)).Return(presets.ErrPresetNotFound)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/presets/distance/5", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/presets/distance/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
