package rpc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hashlink/hlkd/pkg/core/headerchain"
	"github.com/hashlink/hlkd/pkg/core/types"
)

// Server exposes the node's chain over HTTP. It is read-only scaffolding
// around the core: verification requests carry the candidate headers in the
// request body and never mutate the chain.
type Server struct {
	chain *headerchain.Chain
	log   *logrus.Logger
}

// NewServer creates an RPC server over the given chain.
func NewServer(chain *headerchain.Chain, log *logrus.Logger) *Server {
	return &Server{chain: chain, log: log}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/headers/{height}", s.handleHeaderByHeight).Methods(http.MethodGet)
	r.HandleFunc("/verify", s.handleVerify).Methods(http.MethodPost)
	return r
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("RPC server listening")
	return http.ListenAndServe(addr, s.Router())
}

type statusResponse struct {
	Height   uint64 `json:"height"`
	Tip      string `json:"tip"`
	Headers  int    `json:"headers"`
	HashAlgo string `json:"hashAlgo"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	engine := s.chain.Engine()
	resp := statusResponse{
		Height:   s.chain.Height(),
		Headers:  s.chain.Len(),
		HashAlgo: engine.Hasher().Algo(),
	}
	if tip, ok := s.chain.Tip(); ok {
		resp.Tip = engine.HeaderDigest(tip).Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeaderByHeight(w http.ResponseWriter, r *http.Request) {
	heightStr := mux.Vars(r)["height"]
	height, err := strconv.ParseUint(heightStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid height", http.StatusBadRequest)
		return
	}

	header, err := s.chain.HeaderByHeight(height)
	if err != nil {
		http.Error(w, fmt.Sprintf("no header at height %d", height), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

// VerifyRequest carries a candidate extension of a trusted header already on
// the chain, identified by height.
type VerifyRequest struct {
	TrustedHeight uint64         `json:"trustedHeight"`
	Headers       []types.Header `json:"headers"`
}

// VerifyResponse is the strictly binary answer, with the first broken link
// named when invalid. An invalid chain is an expected input and a 200
// response, never an HTTP error.
type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	trusted, err := s.chain.HeaderByHeight(req.TrustedHeight)
	if err != nil {
		http.Error(w, fmt.Sprintf("no trusted header at height %d", req.TrustedHeight), http.StatusNotFound)
		return
	}

	resp := VerifyResponse{Valid: true}
	if err := s.chain.Engine().Check(trusted, req.Headers); err != nil {
		resp = VerifyResponse{Valid: false, Reason: err.Error()}
	}

	s.log.WithFields(logrus.Fields{
		"trustedHeight": req.TrustedHeight,
		"candidates":    len(req.Headers),
		"valid":         resp.Valid,
	}).Debug("verify request")

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}
