package presets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/tracing"
	"github.com/vik-ma/local-lift-log-sub002/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/presets/{group}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-presets")
	r.HandleFunc("/presets/{group}", handler.HandleAdd).Methods("POST", "OPTIONS").Name("add-preset")
	r.HandleFunc("/presets/{group}/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-preset")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.list")
	defer span.End()

	group, err := units.ParseGroup(mux.Vars(r)["group"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := handler.store.List(ctx, group)
	if err != nil {
		if errors.Is(err, ErrUnsupportedGroup) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("list presets: %s", err)
		http.Error(w, "list presets failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.add")
	defer span.End()

	group, err := units.ParseGroup(mux.Vars(r)["group"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var preset sumcalc.Preset
	if err := json.NewDecoder(r.Body).Decode(&preset); err != nil {
		log.Errorf("add preset, unmarshal json params: %s", err)
		http.Error(w, "add preset failed", http.StatusBadRequest)
		return
	}
	preset.ID = 0
	preset.Group = group

	added, err := handler.store.Add(ctx, preset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPreset), errors.Is(err, ErrUnsupportedGroup):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrPresetExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Errorf("add preset: %s", err)
			http.Error(w, "add preset failed", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("new preset added: %+v", added)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.presets.delete")
	defer span.End()

	vars := mux.Vars(r)
	group, err := units.ParseGroup(vars["group"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid preset id", http.StatusBadRequest)
		return
	}

	if err := handler.store.Delete(ctx, group, id); err != nil {
		switch {
		case errors.Is(err, ErrPresetNotFound):
			http.Error(w, "preset not found", http.StatusNotFound)
		case errors.Is(err, ErrUnsupportedGroup):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("delete preset [%d]: %s", id, err)
			http.Error(w, "delete preset failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
