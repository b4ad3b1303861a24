package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/view"
)

// Server exposes the editor over HTTP: REST for tree/config inspection and
// layout export, a websocket for the edit session (frames out, pointer and
// slider events in) and one for status messages. All view access is
// marshalled onto the edit loop goroutine, keeping the core single-threaded.
type Server struct {
	view   *view.View
	source *perks.Source

	loop *editLoop
}

func StartServer(addr string, v *view.View, source *perks.Source, webPath string) error {
	srv := &Server{
		view:   v,
		source: source,
		loop:   newEditLoop(v),
	}
	go srv.loop.run()

	h := handlers.RecoveryHandler()(srv.router(webPath))
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] starting server %v", addr)

	return http.ListenAndServe(addr, h)
}

func (srv *Server) router(webPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/skills", srv.HandlerSkills)
	r.HandleFunc("/json/tree", srv.HandlerActiveTree)
	r.HandleFunc("/json/tree/{skill}", srv.HandlerTree)
	r.HandleFunc("/json/config", srv.HandlerConfig)
	r.HandleFunc("/export/{skill}/{format}", srv.HandlerExport)
	r.HandleFunc("/debug/view", srv.HandlerDebugView)
	r.HandleFunc("/ws/edit", srv.HandlerEditWS)
	r.HandleFunc("/ws/status", srv.HandlerStatusWS)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(webPath)))
	return r
}
