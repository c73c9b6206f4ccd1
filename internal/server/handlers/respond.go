package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/edukeeper/internal/server/storage"
	"github.com/iudanet/edukeeper/pkg/api"
)

// maxBodyBytes ограничение на размер тела запроса
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: code, Message: message})
}

// writeStorageError переводит ошибку storage в HTTP статус
func writeStorageError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound):
		writeError(w, logger, http.StatusNotFound, api.ErrCodeNotFound, err.Error())
	case errors.Is(err, storage.ErrVersionConflict):
		writeError(w, logger, http.StatusConflict, api.ErrCodeVersionConflict, err.Error())
	case errors.Is(err, storage.ErrInvalidFilter), errors.Is(err, storage.ErrInvalidWrite):
		writeError(w, logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, err.Error())
	default:
		logger.Error("storage failure", slog.Any("error", err))
		writeError(w, logger, http.StatusInternalServerError, api.ErrCodeInternal, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
