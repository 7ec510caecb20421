package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/server"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// AttributeResponse is the JSON form of a plain or derived attribute
type AttributeResponse struct {
	Key       uint64          `json:"key"`
	OwnerKind model.OwnerKind `json:"owner_kind"`
	Owner     string          `json:"owner"`
	Schema    string          `json:"schema"`
	Value     *string         `json:"value,omitempty"`
}

func plainResponse(a model.PlainAttr) AttributeResponse {
	value := a.GetValue()
	return AttributeResponse{Key: a.GetKey(), OwnerKind: a.OwnerKind(), Owner: a.GetOwnerKey(), Schema: a.GetSchema(), Value: &value}
}

func derResponse(a model.DerAttr) AttributeResponse {
	return AttributeResponse{Key: a.GetKey(), OwnerKind: a.OwnerKind(), Owner: a.GetOwnerKey(), Schema: a.GetSchema()}
}

// attributeFamily adapts the plain and derived attribute stores to one shape
type attributeFamily struct {
	find        func(r *http.Request, key uint64, ownerKind model.OwnerKind) (AttributeResponse, error)
	list        func(r *http.Request, ownerKind model.OwnerKind, ownerKey string) ([]AttributeResponse, error)
	deleteByKey func(r *http.Request, key uint64, ownerKind model.OwnerKind) error
}

func plainFamily(attrs store.PlainAttrStore) attributeFamily {
	return attributeFamily{
		find: func(r *http.Request, key uint64, ownerKind model.OwnerKind) (AttributeResponse, error) {
			a, err := attrs.Find(r.Context(), key, ownerKind)
			if err != nil {
				return AttributeResponse{}, err
			}
			return plainResponse(a), nil
		},
		list: func(r *http.Request, ownerKind model.OwnerKind, ownerKey string) ([]AttributeResponse, error) {
			var found []model.PlainAttr
			var err error
			if ownerKey != "" {
				found, err = attrs.FindByOwner(r.Context(), ownerKind, ownerKey)
			} else {
				found, err = attrs.FindAll(r.Context(), ownerKind)
			}
			if err != nil {
				return nil, err
			}
			out := make([]AttributeResponse, 0, len(found))
			for _, a := range found {
				out = append(out, plainResponse(a))
			}
			return out, nil
		},
		deleteByKey: func(r *http.Request, key uint64, ownerKind model.OwnerKind) error {
			return attrs.DeleteByKey(r.Context(), key, ownerKind)
		},
	}
}

func derFamily(attrs store.DerAttrStore) attributeFamily {
	return attributeFamily{
		find: func(r *http.Request, key uint64, ownerKind model.OwnerKind) (AttributeResponse, error) {
			a, err := attrs.Find(r.Context(), key, ownerKind)
			if err != nil {
				return AttributeResponse{}, err
			}
			return derResponse(a), nil
		},
		list: func(r *http.Request, ownerKind model.OwnerKind, ownerKey string) ([]AttributeResponse, error) {
			var found []model.DerAttr
			var err error
			if ownerKey != "" {
				found, err = attrs.FindByOwner(r.Context(), ownerKind, ownerKey)
			} else {
				found, err = attrs.FindAll(r.Context(), ownerKind)
			}
			if err != nil {
				return nil, err
			}
			out := make([]AttributeResponse, 0, len(found))
			for _, a := range found {
				out = append(out, derResponse(a))
			}
			return out, nil
		},
		deleteByKey: func(r *http.Request, key uint64, ownerKind model.OwnerKind) error {
			return attrs.DeleteByKey(r.Context(), key, ownerKind)
		},
	}
}

// RegisterAttributesEndpoints registers the attribute endpoints. {family} is
// "plain" or "derived" and {ownerKind} one of user, group, any-object,
// membership or configuration.
func RegisterAttributesEndpoints(s *server.Server) {
	families := map[string]attributeFamily{
		"plain":   plainFamily(s.Repos.PlainAttrs),
		"derived": derFamily(s.Repos.DerAttrs),
	}

	s.Router.HandleFunc("/attributes/{family}/{ownerKind}", func(w http.ResponseWriter, r *http.Request) {
		family, ownerKind, ok := parseAttributePath(w, r, families)
		if !ok {
			return
		}
		found, err := family.list(r, ownerKind, r.URL.Query().Get("owner"))
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, found)
	}).Methods("GET")

	s.Router.HandleFunc("/attributes/{family}/{ownerKind}/{key}", func(w http.ResponseWriter, r *http.Request) {
		family, ownerKind, ok := parseAttributePath(w, r, families)
		if !ok {
			return
		}
		key, ok := parseAttributeKey(w, r)
		if !ok {
			return
		}
		found, err := family.find(r, key, ownerKind)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, found)
	}).Methods("GET")

	s.Router.HandleFunc("/attributes/{family}/{ownerKind}/{key}", func(w http.ResponseWriter, r *http.Request) {
		family, ownerKind, ok := parseAttributePath(w, r, families)
		if !ok {
			return
		}
		key, ok := parseAttributeKey(w, r)
		if !ok {
			return
		}
		err := family.deleteByKey(r, key, ownerKind)
		vars := mux.Vars(r)
		auditDelete(r, vars["family"]+"-attributes/"+ownerKind.String(), vars["key"], err)
		if err != nil {
			respondWithStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}

func parseAttributePath(w http.ResponseWriter, r *http.Request, families map[string]attributeFamily) (attributeFamily, model.OwnerKind, bool) {
	vars := mux.Vars(r)
	family, ok := families[vars["family"]]
	if !ok {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("unknown attribute family %q", vars["family"]))
		return attributeFamily{}, 0, false
	}
	ownerKind, err := model.OwnerKindString(vars["ownerKind"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("%s: owner kind %q", store.ErrUnsupportedKind, vars["ownerKind"]))
		return attributeFamily{}, 0, false
	}
	return family, ownerKind, true
}

func parseAttributeKey(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := mux.Vars(r)["key"]
	key, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid attribute key %q", raw))
		return 0, false
	}
	return key, true
}
