package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.respondJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

// statusFor maps an error to its HTTP status and the code reported to the
// client.
func statusFor(err error) (int, errors.Code) {
	if stderrors.Is(err, explorer.ErrClosed) {
		return http.StatusNotFound, errors.ErrCodeViewNotFound
	}
	code := errors.GetCode(err)
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound, code
	case errors.IsInvalid(err):
		return http.StatusBadRequest, code
	case code == errors.ErrCodeNetwork:
		return http.StatusBadGateway, code
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, code
	case code == "":
		return http.StatusInternalServerError, errors.ErrCodeInternal
	default:
		return http.StatusInternalServerError, code
	}
}

// decodeJSON reads a bounded JSON body into v and validates its tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return errors.ValidateStruct(v, errors.ErrCodeInvalidInput)
}
