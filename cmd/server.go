package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/rebeam/beammode"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/jsphweid/rebeam/tuplet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const maxRequestBodySize = 64 << 10

// Server answers rule queries over HTTP.
type Server struct {
	deriver        *timesig.Deriver
	narrow         bool
	allowedOrigins []string
	logger         *slog.Logger

	registry    *prometheus.Registry
	derivations *prometheus.CounterVec
}

func NewServer(d *timesig.Deriver, narrow bool, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	derivations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rebeam_derivations_total",
		Help: "Rule derivations served, by kind and outcome.",
	}, []string{"kind", "outcome"})
	registry.MustRegister(derivations)

	return &Server{
		deriver:        d,
		narrow:         narrow,
		allowedOrigins: allowedOrigins,
		logger:         logger,
		registry:       registry,
		derivations:    derivations,
	}
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/timesig", s.HandleTimeSig).Methods("POST")
	router.HandleFunc("/tuplet", s.HandleTuplet).Methods("POST")
	router.HandleFunc("/beammode/{value}", s.HandleBeamMode).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}

func (s *Server) HandleTimeSig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var input model.TimeSigRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.derivations.WithLabelValues("timesig", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}
	if input.Numerator < 1 || input.Numerator > timesig.MaxNumerator {
		s.derivations.WithLabelValues("timesig", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("numerator must be between 1 and %d", timesig.MaxNumerator))
		return
	}

	rules, err := s.deriver.Derive(timesig.Request{
		Numerator:       input.Numerator,
		Denominator:     input.Denominator,
		Custom:          input.Custom,
		Measure:         input.Measure,
		ScoreNumerators: model.NewNumeratorSet(input.ScoreNumerators...),
	})
	var fatal *timesig.FatalError
	if errors.As(err, &fatal) {
		s.derivations.WithLabelValues("timesig", "fatal").Inc()
		s.logger.Warn("Rejected time signature", slog.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.derivations.WithLabelValues("timesig", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if input.Narrow || s.narrow {
		rules = rules.Narrowed()
	}
	s.derivations.WithLabelValues("timesig", "ok").Inc()
	writeJSON(w, rules)
}

func (s *Server) HandleTuplet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var input model.TupletRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.derivations.WithLabelValues("tuplet", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}
	unit, err := tuplet.ParseUnit(input.Unit)
	if err == nil {
		err = tuplet.Check(input.Count, unit)
	}
	if err != nil {
		s.derivations.WithLabelValues("tuplet", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rules := tuplet.Derive(input.Count, unit)
	if input.Narrow || s.narrow {
		rules = rules.Narrowed()
	}
	s.derivations.WithLabelValues("tuplet", "ok").Inc()
	writeJSON(w, rules)
}

func (s *Server) HandleBeamMode(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["value"]
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.derivations.WithLabelValues("beammode", "bad_request").Inc()
		writeError(w, http.StatusBadRequest, fmt.Sprintf("beam mode %q is not an integer", raw))
		return
	}
	mode := beammode.ConvertMode(beammode.Legacy(v))
	s.derivations.WithLabelValues("beammode", "ok").Inc()
	writeJSON(w, model.BeamModeResponse{Legacy: v, Mode: int(mode), Name: mode.String()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}
