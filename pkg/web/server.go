// Package web serves the latest report over HTTP.
package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/msgs"
	"github.com/robotalks/txtest/pkg/tx"
)

// ReportSource provides the latest completed report.
type ReportSource interface {
	LastReport() (tx.Report, bool)
}

// Server exposes:
//
//	GET /status       the latest report as JSON
//	GET /status/line  the latest diagnostic line as text
//	GET /ws           the event stream, when Events is set
type Server struct {
	Addr   string
	Device string
	Source ReportSource
	Events http.Handler
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a Server.
func NewServer(addr, device string) *Server {
	return &Server{Addr: addr, Device: device}
}

// Router builds the routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/status", s.statusHandler).Methods("GET")
	r.HandleFunc("/status/line", s.statusLineHandler).Methods("GET")
	if s.Events != nil {
		r.Handle("/ws", s.Events)
	}
	return r
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Router()}
	glog.Infof("http listening on %s", s.Addr)
	return fx.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
}

func (s *Server) lastReport(w http.ResponseWriter) (*tx.Report, bool) {
	if s.Source != nil {
		if r, ok := s.Source.LastReport(); ok {
			return &r, true
		}
	}
	respondError(w, http.StatusServiceUnavailable, "no report yet")
	return nil, false
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := s.lastReport(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(msgs.NewStatusReport(s.Device, report))
}

func (s *Server) statusLineHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := s.lastReport(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, report.Line()+"\n")
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&errorResponse{Error: msg})
}
