// Package server exposes the page replacement simulator as an HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/recording"
)

// RunIDHeader is the response header that carries the ID of a simulation.
const RunIDHeader = "X-Run-ID"

// Server turns the simulator into a web service.
type Server struct {
	allowedOrigins     []string
	maxReferenceLength int
	recorder           recording.DataRecorder
	logger             *log.Logger
	verbose            bool
}

// NewServer creates a new Server that accepts requests from any origin.
func NewServer() *Server {
	return &Server{
		allowedOrigins: []string{"*"},
		logger:         log.New(os.Stderr, "", log.LstdFlags),
	}
}

// WithAllowedOrigins sets the origins that may call the API from a browser.
func (s *Server) WithAllowedOrigins(origins []string) *Server {
	s.allowedOrigins = origins
	return s
}

// WithMaxReferenceLength limits the length of the reference strings accepted.
// Zero means no limit.
func (s *Server) WithMaxReferenceLength(n int) *Server {
	s.maxReferenceLength = n
	return s
}

// WithRecorder records the accesses of every simulation.
func (s *Server) WithRecorder(r recording.DataRecorder) *Server {
	s.recorder = r
	return s
}

// WithLogger sets the logger for requests.
func (s *Server) WithLogger(logger *log.Logger) *Server {
	s.logger = logger
	return s
}

// WithVerbose logs every access of every simulation.
func (s *Server) WithVerbose(verbose bool) *Server {
	s.verbose = verbose
	return s
}

// Handler returns the router serving the API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/simulate", s.simulate).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/simulate", s.simulate).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/policies", s.listPolicies).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/resource", s.listResources).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/profile", s.collectProfile).
		Methods(http.MethodGet, http.MethodOptions)

	r.Use(s.logRequests)
	r.Use(s.cors)
	r.Use(mux.CORSMethodMiddleware(r))

	return r
}

// Serve serves the API on the listener until ctx is cancelled or serving
// fails. On cancellation, in-flight requests are given a few seconds to
// complete.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	fmt.Fprintf(os.Stderr, "Serving page replacement simulator on http://%s\n",
		listener.Addr())

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if serveErr := <-errc; !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}

	return err
}

// ListenAndServe listens on the address and serves the API until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

type simulateReq struct {
	Reference *[]int `json:"reference"`
	Frames    *int   `json:"frames"`
}

type errorRsp struct {
	Detail string `json:"detail"`
}

var errMissingField = errors.New("field required")

func (s *Server) parseSimulateReq(r *http.Request) ([]int, int, error) {
	req := simulateReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid request body: %w", err)
	}

	if req.Reference == nil {
		return nil, 0, fmt.Errorf("reference: %w", errMissingField)
	}

	if req.Frames == nil {
		return nil, 0, fmt.Errorf("frames: %w", errMissingField)
	}

	if *req.Frames < 0 {
		return nil, 0, fmt.Errorf("frames: %w", paging.ErrNegativeFrames)
	}

	if s.maxReferenceLength > 0 && len(*req.Reference) > s.maxReferenceLength {
		return nil, 0, fmt.Errorf(
			"reference: length %d exceeds the limit of %d",
			len(*req.Reference), s.maxReferenceLength)
	}

	return *req.Reference, *req.Frames, nil
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}

	reference, frames, err := s.parseSimulateReq(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorRsp{Detail: err.Error()})
		return
	}

	runID := xid.New().String()

	var hooks []hooking.Hook

	var recorder *recording.AccessRecorder
	if s.recorder != nil {
		recorder = recording.NewAccessRecorder(s.recorder, runID)
		hooks = append(hooks, recorder)
	}

	if s.verbose {
		hooks = append(hooks, paging.NewAccessLogger(s.logger))
	}

	report, err := paging.Compare(reference, frames, hooks...)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorRsp{Detail: err.Error()})
		return
	}

	if recorder != nil {
		recorder.RecordComparison(report, reference, frames)
		s.recorder.Flush()
	}

	w.Header().Set(RunIDHeader, runID)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) listPolicies(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}

	writeJSON(w, http.StatusOK, paging.AllPolicies())
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}

	pid := os.Getpid()

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRsp{Detail: err.Error()})
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRsp{Detail: err.Error()})
		return
	}

	memory, err := proc.MemoryInfo()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRsp{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memory.RSS,
	})
}

func (s *Server) collectProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}

	duration := time.Second

	if secStr := r.URL.Query().Get("seconds"); secStr != "" {
		sec, err := strconv.ParseFloat(secStr, 64)
		if err != nil || sec <= 0 || sec > 60 {
			writeJSON(w, http.StatusUnprocessableEntity, errorRsp{
				Detail: fmt.Sprintf("seconds: invalid duration %q", secStr),
			})

			return
		}

		duration = time.Duration(sec * float64(time.Second))
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		writeJSON(w, http.StatusConflict, errorRsp{Detail: err.Error()})
		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, http.StatusOK, prof)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(data)
	if err != nil {
		log.Printf("write response: %v", err)
	}
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
