package httpapi

import (
	"net/http"

	"github.com/openlending/lending-reservations-go/lending"
)

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.stores.Books().FindByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.stores.Books().SearchByTitle(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, books)
}

// saveBook upserts the book record. The isbn in the path is authoritative,
// a differing isbn in the body is overridden.
func (h *Handler) saveBook(w http.ResponseWriter, r *http.Request) {
	var book lending.Book

	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		h.badRequest(w, r, err)
		return
	}

	book.ISBN = r.PathValue("isbn")

	if err := h.stores.Books().Save(r.Context(), book); err != nil {
		h.domainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.stores.Books().Delete(r.Context(), r.PathValue("isbn")); err != nil {
		h.domainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
