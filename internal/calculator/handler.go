package calculator

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/expr"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/tracing"
	"github.com/vik-ma/local-lift-log-sub002/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var ownerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type EvaluateRequest struct {
	Expression string `json:"expression"`
}

type KeypadRequest struct {
	State expr.Builder `json:"state"`
	Keys  []string     `json:"keys"`
}

type KeypadResponse struct {
	State      expr.Builder    `json:"state"`
	Validation expr.Validation `json:"validation"`
}

type ConvertRequest struct {
	Session sumcalc.Session `json:"session"`
	Unit    string          `json:"unit"`
}

type EncodeResponse struct {
	CalculationString string `json:"calculationString"`
}

type EncodeErrorResponse struct {
	Errors []string `json:"errors"`
}

type DecodeRequest struct {
	CalculationString string      `json:"calculationString"`
	Group             units.Group `json:"group"`
	Unit              string      `json:"unit"`
}

type StepMultiplierRequest struct {
	Input     string  `json:"input"`
	Increment float64 `json:"increment"`
	Increase  bool    `json:"increase"`
}

type StepMultiplierResponse struct {
	Input   string `json:"input"`
	Changed bool   `json:"changed"`
}

// DefaultUnits is the active unit used per group when a request names none.
type DefaultUnits map[units.Group]string

type Handler struct {
	service             *Service
	defaultUnits        DefaultUnits
	multiplierIncrement float64
}

func NewHandler(service *Service, defaultUnits DefaultUnits, multiplierIncrement float64) *Handler {
	return &Handler{
		service:             service,
		defaultUnits:        defaultUnits,
		multiplierIncrement: multiplierIncrement,
	}
}

// SetupRoutes registers the calculator routes. evaluateMiddlewares only wrap
// the expression evaluating routes.
func (handler *Handler) SetupRoutes(r *mux.Router, evaluateMiddlewares ...mux.MiddlewareFunc) {
	limited := func(h http.HandlerFunc) http.Handler {
		var wrapped http.Handler = h
		for i := len(evaluateMiddlewares) - 1; i >= 0; i-- {
			wrapped = evaluateMiddlewares[i](wrapped)
		}
		return wrapped
	}

	calcRouter := r.PathPrefix("/calculator").Subrouter()
	calcRouter.Handle("/evaluate", limited(handler.HandleEvaluate)).Methods("POST", "OPTIONS").Name("calculator-evaluate")
	calcRouter.Handle("/keypad", limited(handler.HandleKeypad)).Methods("POST", "OPTIONS").Name("calculator-keypad")
	calcRouter.Handle("/items", limited(handler.HandleNewItem)).Methods("POST", "OPTIONS").Name("calculator-new-item")
	calcRouter.Handle("/items/edit", limited(handler.HandleEditItem)).Methods("POST", "OPTIONS").Name("calculator-edit-item")

	calcRouter.HandleFunc("/aggregate", handler.HandleAggregate).Methods("POST", "OPTIONS").Name("calculator-aggregate")
	calcRouter.HandleFunc("/convert", handler.HandleConvert).Methods("POST", "OPTIONS").Name("calculator-convert")
	calcRouter.HandleFunc("/encode", handler.HandleEncode).Methods("POST", "OPTIONS").Name("calculator-encode")
	calcRouter.HandleFunc("/decode", handler.HandleDecode).Methods("POST", "OPTIONS").Name("calculator-decode")
	calcRouter.HandleFunc("/multiplier/step", handler.HandleStepMultiplier).Methods("POST", "OPTIONS").Name("calculator-step-multiplier")

	calcRouter.HandleFunc("/sessions/{owner}/{group}", handler.HandleGetSession).Methods("GET", "OPTIONS").Name("calculator-get-session")
	calcRouter.HandleFunc("/sessions/{owner}/{group}", handler.HandleSaveSession).Methods("PUT", "OPTIONS").Name("calculator-save-session")
	calcRouter.HandleFunc("/sessions/{owner}/{group}", handler.HandleDeleteSession).Methods("DELETE", "OPTIONS").Name("calculator-delete-session")

	calcRouter.HandleFunc("/drafts/{owner}/{group}", handler.HandleGetDraft).Methods("GET", "OPTIONS").Name("calculator-get-draft")
	calcRouter.HandleFunc("/drafts/{owner}/{group}", handler.HandleSaveDraft).Methods("PUT", "OPTIONS").Name("calculator-save-draft")
}

func (handler *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("evaluate, unmarshal json params: %s", err)
		http.Error(w, "evaluate failed", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, handler.service.Evaluate(ctx, req.Expression), http.StatusOK)
}

func (handler *Handler) HandleKeypad(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.keypad")
	defer span.End()

	var req KeypadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("keypad, unmarshal json params: %s", err)
		http.Error(w, "keypad failed", http.StatusBadRequest)
		return
	}

	state := req.State
	for _, key := range req.Keys {
		state = state.Apply(key)
	}
	if state.Text == "" {
		state = expr.NewBuilder()
	}

	pkg.WriteJSON(w, KeypadResponse{
		State:      state,
		Validation: handler.service.Evaluate(ctx, state.Text),
	}, http.StatusOK)
}

func (handler *Handler) HandleNewItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.new-item")
	defer span.End()

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new item, unmarshal json params: %s", err)
		http.Error(w, "new item failed", http.StatusBadRequest)
		return
	}

	item, err := handler.service.NewItem(ctx, req)
	if err != nil {
		handler.writeServiceError(w, "new item", err)
		return
	}

	pkg.WriteJSON(w, item, http.StatusOK)
}

func (handler *Handler) HandleEditItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.edit-item")
	defer span.End()

	var req ItemEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("edit item, unmarshal json params: %s", err)
		http.Error(w, "edit item failed", http.StatusBadRequest)
		return
	}

	item, err := handler.service.EditItem(ctx, req)
	if err != nil {
		handler.writeServiceError(w, "edit item", err)
		return
	}

	pkg.WriteJSON(w, item, http.StatusOK)
}

func (handler *Handler) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.aggregate")
	defer span.End()

	var session sumcalc.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("aggregate, unmarshal json params: %s", err)
		http.Error(w, "aggregate failed", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, sumcalc.Aggregate(session), http.StatusOK)
}

func (handler *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.convert")
	defer span.End()

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("convert, unmarshal json params: %s", err)
		http.Error(w, "convert failed", http.StatusBadRequest)
		return
	}
	if err := checkUnit(req.Unit, req.Session.Group); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	converted := sumcalc.ConvertSession(req.Session, req.Unit)
	pkg.WriteJSON(w, newLoadedSession(converted, 0), http.StatusOK)
}

func (handler *Handler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.encode")
	defer span.End()

	var session sumcalc.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("encode, unmarshal json params: %s", err)
		http.Error(w, "encode failed", http.StatusBadRequest)
		return
	}

	encoded, err := sumcalc.Encode(session)
	if err != nil {
		handler.service.metricsManager.CounterEncodeFailures.Inc()
		pkg.WriteJSON(w, encodeErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	pkg.WriteJSON(w, EncodeResponse{CalculationString: encoded}, http.StatusOK)
}

func (handler *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.decode")
	defer span.End()

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("decode, unmarshal json params: %s", err)
		http.Error(w, "decode failed", http.StatusBadRequest)
		return
	}
	if req.Unit == "" {
		req.Unit = handler.defaultUnits[req.Group]
	}

	loaded, err := handler.service.Decode(ctx, req.CalculationString, req.Unit, req.Group)
	if err != nil {
		handler.writeServiceError(w, "decode", err)
		return
	}

	pkg.WriteJSON(w, loaded, http.StatusOK)
}

func (handler *Handler) HandleStepMultiplier(w http.ResponseWriter, r *http.Request) {
	var req StepMultiplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("step multiplier, unmarshal json params: %s", err)
		http.Error(w, "step multiplier failed", http.StatusBadRequest)
		return
	}
	if req.Increment == 0 {
		req.Increment = handler.multiplierIncrement
	}

	next, changed := sumcalc.StepMultiplier(req.Input, req.Increment, req.Increase)
	pkg.WriteJSON(w, StepMultiplierResponse{Input: next, Changed: changed}, http.StatusOK)
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.get-session")
	defer span.End()

	ownerID, group, unit, ok := handler.sessionParams(w, r)
	if !ok {
		return
	}

	loaded, err := handler.service.LoadSession(ctx, ownerID, group, unit)
	if err != nil {
		handler.writeServiceError(w, "get session", err)
		return
	}

	pkg.WriteJSON(w, loaded, http.StatusOK)
}

func (handler *Handler) HandleSaveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.save-session")
	defer span.End()

	ownerID, group, _, ok := handler.sessionParams(w, r)
	if !ok {
		return
	}

	var session sumcalc.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("save session, unmarshal json params: %s", err)
		http.Error(w, "save session failed", http.StatusBadRequest)
		return
	}
	session.Group = group

	record, err := handler.service.SaveSession(ctx, ownerID, session)
	if err != nil {
		if errors.Is(err, sumcalc.ErrUnencodableItem) || errors.Is(err, sumcalc.ErrUnencodableTotalMultiplier) {
			pkg.WriteJSON(w, encodeErrorResponse(err), http.StatusUnprocessableEntity)
			return
		}
		handler.writeServiceError(w, "save session", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusOK)
}

func (handler *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.delete-session")
	defer span.End()

	ownerID, group, _, ok := handler.sessionParams(w, r)
	if !ok {
		return
	}

	if err := handler.service.DeleteSession(ctx, ownerID, group); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		handler.writeServiceError(w, "delete session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.get-draft")
	defer span.End()

	ownerID, group, unit, ok := handler.sessionParams(w, r)
	if !ok {
		return
	}

	loaded, err := handler.service.LoadDraft(ctx, ownerID, group, unit)
	if err != nil {
		handler.writeServiceError(w, "get draft", err)
		return
	}

	pkg.WriteJSON(w, loaded, http.StatusOK)
}

func (handler *Handler) HandleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.save-draft")
	defer span.End()

	ownerID, group, _, ok := handler.sessionParams(w, r)
	if !ok {
		return
	}

	var session sumcalc.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("save draft, unmarshal json params: %s", err)
		http.Error(w, "save draft failed", http.StatusBadRequest)
		return
	}
	session.Group = group

	if err := handler.service.SaveDraft(ctx, ownerID, session); err != nil {
		handler.writeServiceError(w, "save draft", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sessionParams reads the owner and group path vars and the optional unit
// query param, writing a 400 on invalid input.
func (handler *Handler) sessionParams(w http.ResponseWriter, r *http.Request) (string, units.Group, string, bool) {
	vars := mux.Vars(r)
	ownerID := vars["owner"]
	if !ownerIDRegex.MatchString(ownerID) {
		http.Error(w, "invalid owner id", http.StatusBadRequest)
		return "", 0, "", false
	}

	group, err := units.ParseGroup(vars["group"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", 0, "", false
	}

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = handler.defaultUnits[group]
	}

	return ownerID, group, unit, true
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, ErrInvalidUnit), errors.Is(err, ErrInvalidItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPresetMissing):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("%s: %s", operation, err)
		http.Error(w, operation+" failed", http.StatusInternalServerError)
	}
}

func encodeErrorResponse(err error) EncodeErrorResponse {
	resp := EncodeErrorResponse{Errors: []string{}}
	for _, e := range multierr.Errors(err) {
		resp.Errors = append(resp.Errors, e.Error())
	}
	return resp
}
