package endpoints

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithStoreError maps repository errors onto status codes
func respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUnknownCollection):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrUnsupportedKind), errors.Is(err, store.ErrOwnerKindMismatch):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrBuiltinAnyType), errors.Is(err, store.ErrRootRealm):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, implcache.ErrInvalid):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
