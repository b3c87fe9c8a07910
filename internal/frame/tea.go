package frame

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is delivered by the Bubble Tea runtime when a requested frame
// is due. Pass it to TeaSource.Deliver.
type FrameMsg struct {
	Time time.Time
	id   uint64
}

// TeaSource schedules frames as tea.Tick commands. Because a Bubble Tea
// program is single-threaded, frames run inside Update.
type TeaSource struct {
	mu       sync.Mutex
	interval time.Duration
	next     uint64
	pending  map[uint64]*teaRequest
}

type teaRequest struct {
	fn     func(time.Time)
	issued bool
}

type teaHandle struct {
	src *TeaSource
	id  uint64
}

func (h teaHandle) Cancel() {
	h.src.mu.Lock()
	delete(h.src.pending, h.id)
	h.src.mu.Unlock()
}

func NewTeaSource(fps int) *TeaSource {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &TeaSource{
		interval: time.Second / time.Duration(fps),
		pending:  make(map[uint64]*teaRequest),
	}
}

func (s *TeaSource) Request(fn func(time.Time)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = &teaRequest{fn: fn}
	return teaHandle{src: s, id: s.next}
}

// Cmd returns tick commands for requests not yet handed to the runtime,
// or nil when there are none.
func (s *TeaSource) Cmd() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cmds []tea.Cmd
	for id, r := range s.pending {
		if r.issued {
			continue
		}
		r.issued = true
		id := id
		cmds = append(cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
			return FrameMsg{Time: t, id: id}
		}))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Deliver runs the request msg belongs to. Messages for revoked requests
// are dropped and Deliver reports false.
func (s *TeaSource) Deliver(msg FrameMsg) bool {
	s.mu.Lock()
	r, ok := s.pending[msg.id]
	if ok {
		delete(s.pending, msg.id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	r.fn(msg.Time)
	return true
}

// Pending returns the number of live requests.
func (s *TeaSource) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
