package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/practice-sem-2/messenger-service/internal/models"
	usecase "github.com/practice-sem-2/messenger-service/internal/usecases"
	"github.com/sirupsen/logrus"
)

type UserService interface {
	BanUsers(ctx context.Context, mod models.BanModification) error
	SearchUsers(ctx context.Context, emailPart string) (*models.UserBanModel, error)
}

type usersHandler struct {
	users  UserService
	logger logrus.FieldLogger
}

func (h *usersHandler) search(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.SearchUsers(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *usersHandler) ban(w http.ResponseWriter, r *http.Request) {
	var mod models.BanModification
	if err := json.NewDecoder(r.Body).Decode(&mod); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.users.BanUsers(r.Context(), mod); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *usersHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := usecase.Kind(err)
	entry := h.logger.
		WithField("path", r.URL.Path).
		WithField("error_kind", kind).
		WithError(err)

	status := http.StatusInternalServerError
	switch kind {
	case usecase.KindInvalidRequest:
		status = http.StatusBadRequest
	case usecase.KindNotFound:
		status = http.StatusNotFound
	case usecase.KindForbidden:
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		entry.Error("admin request failed")
	} else {
		entry.Warning("admin request failed")
	}
	http.Error(w, http.StatusText(status), status)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
