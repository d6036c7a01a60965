// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/hannalind/quizroom/db"
	"github.com/hannalind/quizroom/middleware"
)

// pathID parses a numeric path parameter. Writes a 400 and returns false on
// failure so callers can bail with a bare return.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// writeDBError maps integrity violations to client errors and everything
// else to a 500.
func writeDBError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case db.IsUnique(err):
		middleware.ErrorResponse(w, http.StatusConflict, "Already exists")
	case db.IsForeignKey(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Referenced row does not exist")
	case db.IsCheck(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Value outside allowed set")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
