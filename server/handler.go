package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// uploadField is the multipart form field holding the CSV file.
const uploadField = "file"

var errMissingFile = errors.New(`multipart upload must contain a "file" part`)

// Analyze runs the pipeline on an uploaded CSV. The body is either a
// multipart form with a "file" part or the raw CSV.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithField("request_id", RequestID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	data, err := s.readUpload(r)
	if err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
			err = fmt.Errorf("upload exceeds %d bytes", maxBytesErr.Limit)
		}
		log.WithError(err).Warn("Rejected upload")
		s.metrics.Analyses.WithLabelValues("bad_upload").Inc()
		writeError(w, status, err.Error())
		return
	}

	start := time.Now()
	report, err := s.analyzer.Analyze(r.Context(), bytes.NewReader(data))
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		status, outcome := classify(err)
		s.metrics.Analyses.WithLabelValues(outcome).Inc()
		entry := log.WithError(err).WithField("outcome", outcome)
		if status >= http.StatusInternalServerError {
			entry.Error("Analysis failed")
		} else {
			entry.Info("Analysis rejected")
		}
		writeError(w, status, err.Error())
		return
	}

	s.metrics.Analyses.WithLabelValues("ok").Inc()
	s.metrics.RowsAnalyzed.Observe(float64(report.TotalRecords))
	log.WithFields(logrus.Fields{
		"records": report.TotalRecords,
		"mape":    report.ModelMetrics.MAPE,
		"rmse":    report.ModelMetrics.RMSE,
	}).Info("Analysis completed")

	writeJSON(w, http.StatusOK, report)
}

// readUpload returns the CSV bytes of the request.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errMissingFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != uploadField {
			part.Close()
			continue
		}
		defer part.Close()
		return io.ReadAll(part)
	}
}

// Preflight answers CORS preflight requests; the headers are set by
// corsMiddleware.
func (s *Server) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
