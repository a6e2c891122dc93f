// Package server serves exif.Service over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ankit-chaubey/exifkit/core"
	"github.com/ankit-chaubey/exifkit/core/image"
	"github.com/ankit-chaubey/exifkit/exif"
	"github.com/gorilla/mux"
)

type Server struct {
	service  *exif.Service
	maxBytes int64
	logger   *slog.Logger
	router   *mux.Router
}

func New(service *exif.Service, maxBytes int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	api := s.router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/tags", s.handleTags).Methods("POST")
	api.HandleFunc("/tags/{name}", s.handleTag).Methods("POST")
	api.HandleFunc("/iptc/{name}", s.handleIptcTag).Methods("POST")
	api.HandleFunc("/pretty", s.handlePretty).Methods("POST")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on addr until the server fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

type tagResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.create(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, core.NewReport(obj.Metadata("upload")))
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.create(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	val, found := obj.GetTag(name)
	writeJSON(w, http.StatusOK, tagResponse{Name: name, Value: val, Found: found})
}

func (s *Server) handleIptcTag(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.create(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	val, found := obj.GetIptcTag(name)
	writeJSON(w, http.StatusOK, tagResponse{Name: name, Value: val, Found: found})
}

func (s *Server) handlePretty(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.create(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, obj.Pretty())
}

// create reads the request body as an image and builds a reader for it. A
// body that is not an image still yields a reader, in degraded state.
func (s *Server) create(w http.ResponseWriter, r *http.Request) (*exif.Object, bool) {
	withXMP := false
	if v := r.URL.Query().Get("xmp"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid xmp value %q", v))
			return nil, false
		}
		withXMP = b
	}

	body := io.Reader(r.Body)
	if s.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	}
	img, err := image.FromReader("upload", body)
	if err != nil {
		s.logger.Warn("failed to read upload", "error", err)
		status := http.StatusBadRequest
		if errors.As(err, new(*http.MaxBytesError)) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return nil, false
	}
	return s.service.Create(img, exif.WithXMP(withXMP)), true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
