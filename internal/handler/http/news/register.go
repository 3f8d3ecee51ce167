package news

import (
	"net/http"
	"time"
)

// Register registers the news endpoints with the given mux.
func Register(mux *http.ServeMux, svc Service, defaultLimit int) {
	mux.Handle("GET  /news", ListHandler{Svc: svc, DefaultLimit: defaultLimit, Now: time.Now})
	mux.Handle("POST /news", ActionHandler{Svc: svc})
}
