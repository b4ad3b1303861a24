package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dovahkit/perktree_editor/render"
	"github.com/dovahkit/perktree_editor/status"
	"github.com/dovahkit/perktree_editor/utils"
	"github.com/dovahkit/perktree_editor/view"
)

var sessionNames utils.SessionNameGenerator

// editLoop owns the view. The core is strictly single-threaded: every
// mutation and every frame runs as a closure on this goroutine, handlers
// only post work and wait.
type editLoop struct {
	v   *view.View
	ops chan func(*view.View)
}

func newEditLoop(v *view.View) *editLoop {
	return &editLoop{
		v:   v,
		ops: make(chan func(*view.View), 16),
	}
}

func (l *editLoop) run() {
	for op := range l.ops {
		op(l.v)
	}
}

func (l *editLoop) do(op func(*view.View)) {
	done := make(chan struct{})
	l.ops <- func(v *view.View) {
		defer close(done)
		op(v)
	}
	<-done
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// editEvent is one client message on the edit socket. Pointer coordinates
// are viewport pixels; the client reports its canvas size with each event so
// unprojection sees the aspect it rendered with.
type editEvent struct {
	Type  string  `json:"type"` // select, down, move, up, fov, offset_z, frame
	Skill string  `json:"skill,omitempty"`
	X     float32 `json:"x,omitempty"`
	Y     float32 `json:"y,omitempty"`
	W     float32 `json:"w,omitempty"`
	H     float32 `json:"h,omitempty"`
	Value float32 `json:"value,omitempty"`
}

type editFrame struct {
	Type     string                `json:"type"` // frame
	Uploads  []render.RecordedMesh `json:"uploads,omitempty"`
	Disposed []int                 `json:"disposed,omitempty"`
	Frame    render.Frame          `json:"frame"`
	Tree     *jTree                `json:"tree,omitempty"`
	Dragging bool                  `json:"dragging"`
}

// HandlerEditWS runs one edit session: every incoming event is applied on
// the edit loop, and events that leave the view dirty answer with a recorded
// frame for the client to replay.
func (srv *Server) HandlerEditWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] edit ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := sessionNames.SessionName()
	log.Printf("[web] edit session %q connected from %v", session, r.RemoteAddr)
	defer log.Printf("[web] edit session %q closed", session)

	recorder := render.NewRecorder()

	for {
		var ev editEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[web] edit ws read: %v", err)
			}
			return
		}

		var out *editFrame
		srv.loop.do(func(v *view.View) {
			switch ev.Type {
			case "select":
				v.SelectSkill(ev.Skill)
				status.Info("skill %q selected", ev.Skill)
			case "down":
				if v.PointerDown(ev.X, ev.Y, ev.W, ev.H) {
					id, _ := v.DraggedNode()
					status.Info("dragging node %d", id)
				}
			case "move":
				v.PointerMove(ev.X, ev.Y, ev.W, ev.H)
			case "up":
				v.PointerUp()
			case "fov":
				v.SetFov(ev.Value)
			case "offset_z":
				v.SetLookAtOffsetZ(ev.Value)
			case "frame":
				v.RequestRedraw()
			default:
				log.Printf("[web] edit ws unknown event %q", ev.Type)
				return
			}

			if ev.W <= 0 || ev.H <= 0 || !v.Dirty() {
				return
			}
			v.Frame(recorder, ev.W, ev.H)

			frame := &editFrame{Type: "frame"}
			frame.Uploads = recorder.Uploaded
			frame.Disposed = recorder.Disposed
			frame.Frame = recorder.TakeFrame()
			if v.Tree() != nil {
				t := treeToJson(v.Tree())
				frame.Tree = &t
			}
			_, frame.Dragging = v.DraggedNode()
			out = frame
		})

		if out != nil {
			data, err := json.Marshal(out)
			if err != nil {
				log.Printf("[web] edit ws marshal: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[web] edit ws write: %v", err)
				return
			}
		}
	}
}

func (srv *Server) HandlerStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] status ws upgrade failed: %v", err)
		return
	}
	status.NewClient(conn)
}
