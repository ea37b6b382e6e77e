package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pairlens/pairlens/internal/apperrors"
	"github.com/pairlens/pairlens/internal/transport/http/dto"
)

func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is supported")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	// An absent address is not an error: the service resolves the default
	// pair for it.
	out, err := s.svc.Lookup(ctx, r.URL.Query().Get("address"))
	if err != nil {
		status := statusFor(err)
		cause := err.Error()
		if status == http.StatusInternalServerError {
			cause = "internal error"
		}
		s.writeError(w, status, apperrors.Code(err), cause)
		return
	}

	s.writeJSON(w, http.StatusOK, dto.PairResponse{
		Pair: out.Pair.Hex(),
		Token0: dto.TokenInfo{
			Address:  out.Token0.Address.Hex(),
			Name:     out.Token0.Name,
			Symbol:   out.Token0.Symbol,
			Decimals: out.Token0.Decimals,
		},
		Token1: dto.TokenInfo{
			Address:  out.Token1.Address.Hex(),
			Name:     out.Token1.Name,
			Symbol:   out.Token1.Symbol,
			Decimals: out.Token1.Decimals,
		},
		Reserve0:    out.Reserve0,
		Reserve1:    out.Reserve1,
		TotalSupply: out.TotalSupply,
	})
}

// statusFor maps the error classification to a status code: caller mistakes
// are 400, upstream chain failures are 502, the rest is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAggregationFailed), errors.Is(err, apperrors.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response write error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, cause string) {
	s.writeJSON(w, status, dto.ErrorResponse{
		Error: code,
		Cause: cause,
	})
}
