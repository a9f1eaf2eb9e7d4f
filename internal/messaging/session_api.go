package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/world"
)

// Request subjects served by SessionAPI.
const (
	SubjectSnapshot = "rogue.snapshot"
	SubjectStatus   = "rogue.status"
	SubjectDescend  = "rogue.descend"
	SubjectAscend   = "rogue.ascend"
	SubjectSave     = "rogue.save"
	SubjectCensus   = "rogue.census"
)

// Reply is the envelope of every response.
type Reply struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

func okReply(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Reply{Data: data})
}

func errorReply(err error) []byte {
	b, _ := json.Marshal(Reply{Error: err.Error()})
	return b
}

// Responder registers request handlers.
type Responder interface {
	Handle(subject string, h Handler) (func(), error)
}

// Saver writes the hosted session to durable storage.
type Saver interface {
	Save() error
}

// FloorEvent is published when the player changes floor.
type FloorEvent struct {
	Depth  int `json:"depth"`
	Floors int `json:"floors"`
}

// SessionAPI answers requests about a hosted session. Every request runs
// under the host lock.
type SessionAPI struct {
	host   *world.Host
	saver  Saver
	events *EventPublisher
}

func NewSessionAPI(host *world.Host, saver Saver, events *EventPublisher) *SessionAPI {
	return &SessionAPI{host: host, saver: saver, events: events}
}

// Register subscribes every handler on r and returns a function removing
// them all.
func (a *SessionAPI) Register(r Responder) (func(), error) {
	handlers := map[string]Handler{
		SubjectSnapshot: a.snapshot,
		SubjectStatus:   a.status,
		SubjectDescend:  a.descend,
		SubjectAscend:   a.ascend,
		SubjectSave:     a.save,
		SubjectCensus:   a.census,
	}

	var unsubs []func()
	unregister := func() {
		for _, u := range unsubs {
			u()
		}
	}
	for _, subject := range []string{SubjectSnapshot, SubjectStatus, SubjectDescend, SubjectAscend, SubjectSave, SubjectCensus} {
		u, err := r.Handle(subject, handlers[subject])
		if err != nil {
			unregister()
			return nil, fmt.Errorf("subscribing %s: %w", subject, err)
		}
		unsubs = append(unsubs, u)
	}
	return unregister, nil
}

// APIWorker serves a SessionAPI on a NatsServer for the life of a context.
type APIWorker struct {
	api    *SessionAPI
	server *NatsServer
}

// Worker returns a worker serving a on server.
func (a *SessionAPI) Worker(server *NatsServer) *APIWorker {
	return &APIWorker{api: a, server: server}
}

func (w *APIWorker) Start(ctx context.Context) error {
	return w.api.Serve(ctx, w.server)
}

// Serve waits for the server, serves requests until ctx ends, then
// unsubscribes.
func (a *SessionAPI) Serve(ctx context.Context, server *NatsServer) error {
	if err := server.WaitReady(ctx); err != nil {
		return nil
	}
	unregister, err := a.Register(server)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "session api ready", "url", server.ClientURL())

	<-ctx.Done()
	unregister()
	return nil
}

func (a *SessionAPI) snapshot([]byte) ([]byte, error) {
	var snap game.Snapshot
	err := a.host.Do(func(s *world.Session) error {
		m := s.Current()
		if m == nil {
			return world.ErrNoFloor
		}
		snap = m.RenderSnapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return okReply(snap)
}

func (a *SessionAPI) status([]byte) ([]byte, error) {
	var st world.Status
	err := a.host.Do(func(s *world.Session) error {
		st = s.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return okReply(st)
}

func (a *SessionAPI) census([]byte) ([]byte, error) {
	var c world.Census
	err := a.host.Do(func(s *world.Session) error {
		c = s.Census()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return okReply(c)
}

func (a *SessionAPI) descend([]byte) ([]byte, error) {
	return a.changeFloor((*world.Session).Descend)
}

func (a *SessionAPI) ascend([]byte) ([]byte, error) {
	return a.changeFloor((*world.Session).Ascend)
}

func (a *SessionAPI) changeFloor(move func(*world.Session) error) ([]byte, error) {
	var st world.Status
	err := a.host.Do(func(s *world.Session) error {
		if err := move(s); err != nil {
			return err
		}
		st = s.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if a.events != nil {
		if err := a.events.PublishEvent("floor", FloorEvent{Depth: st.Depth, Floors: st.Floors}); err != nil {
			slog.Warn("failed to publish floor event", "error", err)
		}
	}
	return okReply(st)
}

func (a *SessionAPI) save([]byte) ([]byte, error) {
	if err := a.saver.Save(); err != nil {
		return nil, err
	}
	return okReply(struct{}{})
}
