package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds each websocket write.
const writeWait = 10 * time.Second

// rowMessage is one streamed record.
type rowMessage struct {
	Index  int               `json:"index"`
	Fields map[string]string `json:"fields"`
	Date   string            `json:"date,omitempty"`
}

// handleRows streams every master record as a JSON message in row order,
// then closes normally. Clients that cannot buffer /all use this instead.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	master := s.set.Master
	names := master.ColumnNames()

	for i, rec := range master.Records {
		msg := rowMessage{
			Index:  i,
			Fields: make(map[string]string, len(names)),
		}
		for j, name := range names {
			msg.Fields[name] = rec.Fields[j]
		}
		if rec.Date.Valid {
			msg.Date = rec.Date.Time.Format("2006-01-02")
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("row stream aborted", "row", i, "error", err)
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of table"),
	)
	s.logger.Debug("row stream complete", "rows", master.NumRows())
}
