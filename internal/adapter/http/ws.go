package adapthttp

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/net/websocket"
)

// wsCollaborate upgrades to a websocket and echoes each message back tagged
// with the sender and slide. Browsers cannot set headers on websocket
// requests, so the token travels as a query parameter.
func (s *Server) wsCollaborate() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.Authenticate(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			writeErrorMsg(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		slideID := mux.Vars(r)["slide_id"]

		websocket.Handler(func(conn *websocket.Conn) {
			defer func() { _ = conn.Close() }()
			for {
				var msg string
				if err := websocket.Message.Receive(conn, &msg); err != nil {
					if err != io.EOF {
						s.logger.Debug().Err(err).Str("slide_id", slideID).Msg("websocket receive failed")
					}
					return
				}
				reply := fmt.Sprintf("%s said: %s (slide: %s)", user.Username, msg, slideID)
				if err := websocket.Message.Send(conn, reply); err != nil {
					return
				}
			}
		}).ServeHTTP(w, r)
	})
}
