package sse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const ContentType = "text/event-stream"

// Handler streams the events broadcast on clients until the request ends.
func Handler(clients *Clients, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", ContentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		client := NewClient()
		clients.Add(client)
		logger.Debug().Stringer("client", client.ID).Msg("New SSE client connected")
		defer func() {
			clients.Delete(client)
			logger.Debug().Stringer("client", client.ID).Msg("SSE client disconnected")
		}()

		fmt.Fprintf(w, "event: connected\ndata: %s\n\n", client.ID)
		flusher.Flush()

		done := r.Context().Done()
		for {
			select {
			case ev, ok := <-client.Msg:
				if !ok {
					return
				}
				writeEvent(w, ev)
				flusher.Flush()
			case <-done:
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev Event) {
	if ev.Name != "" {
		fmt.Fprintf(w, "event: %s\n", ev.Name)
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
