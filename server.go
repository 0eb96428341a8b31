package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/espkit/espgw/wifi"
)

// Server handles incoming HTTP requests for interacting with the
// configured WiFi module session
type Server struct {
	Logger  *slog.Logger
	Session *wifi.Session

	// mu serializes handlers over the single session, which itself
	// supports only one exchange at a time.
	mu sync.Mutex
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /networks", s.handleNetworks)
	mux.HandleFunc("POST /join", s.handleJoin)
	mux.HandleFunc("POST /disconnect", s.handleDisconnect)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// moduleStatusCode maps a command failure onto an HTTP status: an ERROR
// reply from the module is a bad gateway, anything else is internal.
func moduleStatusCode(err error) int {
	if errors.Is(err, wifi.ErrCommandFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// handleHealthz answers 200 while the module echoes the self-test
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ok, err := wifi.Send(s.Session, wifi.Test{})
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("Self-test failed", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}
	if !ok {
		s.sendError(w, "module did not echo self-test", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleStatus reports firmware version, operating mode and current association
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	type StatusResponse struct {
		Version string  `json:"version"`
		Mode    string  `json:"mode"`
		SSID    *string `json:"ssid"`
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	version, err := wifi.Send(s.Session, wifi.GetVersion{})
	if err != nil {
		s.Logger.Error("Failed to query version", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	mode, err := wifi.Send(s.Session, wifi.GetMode{})
	if err != nil {
		s.Logger.Error("Failed to query mode", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	ssid, err := wifi.Send(s.Session, wifi.CurrentAP{})
	if err != nil {
		s.Logger.Error("Failed to query association", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	s.sendJSON(w, StatusResponse{
		Version: version,
		Mode:    mode.String(),
		SSID:    ssid,
	})
}

// handleNetworks runs an access point scan and returns the records
func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	type NetworkResponse struct {
		Encryption     string `json:"encryption"`
		EncryptionCode uint8  `json:"encryption_code"`
		SSID           string `json:"ssid"`
		RSSI           int16  `json:"rssi"`
		MAC            string `json:"mac"`
		Channel        uint8  `json:"channel"`
	}

	s.mu.Lock()
	aps, err := wifi.Send(s.Session, wifi.ListAPs{})
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("Scan failed", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	networks := make([]NetworkResponse, 0, len(aps))
	for _, ap := range aps {
		networks = append(networks, NetworkResponse{
			Encryption:     ap.Encryption.String(),
			EncryptionCode: uint8(ap.Encryption),
			SSID:           ap.SSID,
			RSSI:           ap.RSSI,
			MAC:            ap.MAC,
			Channel:        ap.Channel,
		})
	}

	s.Logger.Info("Scan completed", "networks", len(networks))
	s.sendJSON(w, networks)
}

// handleJoin associates the module with an access point
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	type JoinRequest struct {
		SSID     string `json:"ssid"`
		Password string `json:"password"`
	}

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.SSID == "" {
		s.sendError(w, "'ssid' field is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, err := wifi.Send(s.Session, wifi.Join{SSID: req.SSID, Password: req.Password})
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("Failed to join network", "error", err, "ssid", req.SSID)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	s.Logger.Info("Joined network", "ssid", req.SSID)
	w.WriteHeader(http.StatusOK)
}

// handleDisconnect drops the current association
func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, err := wifi.Send(s.Session, wifi.Disconnect{})
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("Failed to disconnect", "error", err)
		s.sendError(w, err.Error(), moduleStatusCode(err))
		return
	}

	s.Logger.Info("Disconnected from network")
	w.WriteHeader(http.StatusOK)
}
