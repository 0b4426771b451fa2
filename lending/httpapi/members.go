package httpapi

import (
	"net/http"

	"github.com/openlending/lending-reservations-go/lending"
)

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.stores.Members().FindByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) searchMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.stores.Members().SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// saveMember upserts the member record. The code in the path is
// authoritative, a differing code in the body is overridden.
func (h *Handler) saveMember(w http.ResponseWriter, r *http.Request) {
	var member lending.Member

	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member.Code = r.PathValue("code")

	if err := h.stores.Members().Save(r.Context(), member); err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.stores.Members().Delete(r.Context(), r.PathValue("code")); err != nil {
		h.domainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
