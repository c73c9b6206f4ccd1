package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/edukeeper/pkg/api"
)

// writeError отдаёт клиенту ошибку в том же формате, что и handlers
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
