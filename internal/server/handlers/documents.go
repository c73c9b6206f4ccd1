package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/edukeeper/internal/models"
	"github.com/iudanet/edukeeper/internal/server/storage"
	"github.com/iudanet/edukeeper/internal/validation"
	"github.com/iudanet/edukeeper/pkg/api"
)

// DocumentHandler обслуживает HTTP API удалённого хранилища документов
type DocumentHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
}

// NewDocumentHandler создает новый handler для документов
func NewDocumentHandler(logger *slog.Logger, storage storage.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: storage,
	}
}

// Routes регистрирует маршруты документов в роутере
func (h *DocumentHandler) Routes(r chi.Router) {
	r.Route("/collections/{collection}/documents", func(r chi.Router) {
		r.Get("/", h.Query)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Set)
		r.Delete("/{id}", h.Delete)
	})
	r.Post("/batch", h.Batch)
}

// pathParams извлекает и валидирует {collection} и {id}
func (h *DocumentHandler) pathParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	collection := chi.URLParam(r, "collection")
	if err := validation.ValidateCollection(collection); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, err.Error())
		return "", "", false
	}

	id := chi.URLParam(r, "id")
	if err := validation.ValidateDocumentID(id); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, err.Error())
		return "", "", false
	}

	return collection, id, true
}

// Get обрабатывает GET /api/v1/collections/{collection}/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	doc, err := h.storage.Get(r.Context(), collection, id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models.DocumentToAPI(doc))
}

// Query обрабатывает GET /api/v1/collections/{collection}/documents?field=value
// Каждый query параметр становится фильтром равенства, фильтры объединяются по AND
func (h *DocumentHandler) Query(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if err := validation.ValidateCollection(collection); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, err.Error())
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, err.Error())
		return
	}

	docs, err := h.storage.Query(r.Context(), collection, filters...)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	resp := api.QueryResponse{Documents: make([]api.Document, 0, len(docs))}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, models.DocumentToAPI(d))
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Set обрабатывает PUT /api/v1/collections/{collection}/documents/{id}
func (h *DocumentHandler) Set(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	var req api.SetDocumentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if len(req.Data) == 0 {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, "data is required")
		return
	}

	doc, err := h.storage.Set(r.Context(), collection, id, req.Data)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	h.logger.Debug("document stored",
		"collection", collection,
		"id", id,
		"version", doc.Version,
	)

	writeJSON(w, h.logger, http.StatusOK, models.DocumentToAPI(doc))
}

// Delete обрабатывает DELETE /api/v1/collections/{collection}/documents/{id}
// Удаление отсутствующего документа тоже возвращает 204
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}

	if err := h.storage.Delete(r.Context(), collection, id); err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Batch обрабатывает POST /api/v1/batch
// Либо применяются все записи, либо ни одной
func (h *DocumentHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	ops := make([]models.WriteOp, 0, len(req.Writes))
	for i, wop := range req.Writes {
		op := models.WriteOpFromAPI(wop)
		if err := validateWrite(op); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, api.ErrCodeInvalidRequest, fmt.Sprintf("write %d: %v", i, err))
			return
		}
		ops = append(ops, op)
	}

	if err := h.storage.BatchCommit(r.Context(), ops); err != nil {
		h.logger.Warn("batch commit rejected",
			"writes", len(ops),
			"error", err,
		)
		writeStorageError(w, h.logger, err)
		return
	}

	h.logger.Debug("batch committed", "writes", len(ops))

	writeJSON(w, h.logger, http.StatusOK, api.BatchResponse{Committed: len(ops)})
}

func validateWrite(op models.WriteOp) error {
	if err := validation.ValidateCollection(op.Collection); err != nil {
		return err
	}
	if err := validation.ValidateDocumentID(op.ID); err != nil {
		return err
	}
	if op.ExpectedVersion < 0 {
		return fmt.Errorf("expected_version must not be negative")
	}

	switch op.Type {
	case models.WriteSet:
		if len(op.Data) == 0 {
			return fmt.Errorf("set requires data")
		}
	case models.WriteDelete:
	default:
		return fmt.Errorf("unknown write type %q", op.Type)
	}

	return nil
}

// parseFilters превращает query параметры в фильтры в детерминированном порядке
func parseFilters(r *http.Request) ([]models.Filter, error) {
	values := r.URL.Query()
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	filters := make([]models.Filter, 0, len(fields))
	for _, field := range fields {
		if err := validation.ValidateFieldName(field); err != nil {
			return nil, err
		}
		if len(values[field]) != 1 {
			return nil, fmt.Errorf("filter %q must be given exactly once", field)
		}
		filters = append(filters, models.Filter{Field: field, Value: values[field][0]})
	}

	return filters, nil
}
