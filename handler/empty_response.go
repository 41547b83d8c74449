package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// NoContent responds 204 without a body.
func NoContent() Response {
	return emptyResponse{status: http.StatusNoContent}
}
