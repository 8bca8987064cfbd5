// Package sse fans server events out to connected browsers.
package sse

import (
	"sync"

	"github.com/google/uuid"
)

// Event is one Server-Sent Event. An empty Name sends a default "message".
type Event struct {
	Name string
	Data string
}

type Client struct {
	ID  uuid.UUID
	Msg chan Event
}

func NewClient() *Client {
	return &Client{
		ID:  uuid.New(),
		Msg: make(chan Event, 8),
	}
}

type Clients struct {
	clients map[uuid.UUID]*Client
	mu      sync.RWMutex
}

func NewClients() *Clients {
	return &Clients{
		clients: make(map[uuid.UUID]*Client),
	}
}

func (s *Clients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID] = client
}

func (s *Clients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; !ok {
		return
	}
	delete(s.clients, client.ID)
	close(client.Msg)
}

func (s *Clients) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast queues ev for every client. Clients whose buffer is full miss
// the event rather than stall the sender.
func (s *Clients) Broadcast(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		select {
		case client.Msg <- ev:
		default:
		}
	}
}
