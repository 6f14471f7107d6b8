package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/domain/job"
)

type recordingGauge struct {
	mu   sync.Mutex
	last int
}

func (g *recordingGauge) SetWSClients(n int) {
	g.mu.Lock()
	g.last = n
	g.mu.Unlock()
}

func (g *recordingGauge) value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestHub_BroadcastsJobPosted(t *testing.T) {
	gauge := &recordingGauge{}
	hub := NewHub(nil, gauge)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	if gauge.value() != 1 {
		t.Fatalf("expected gauge=1, got %d", gauge.value())
	}

	j := job.Job{ID: uuid.New(), Title: "Go Developer", Company: job.Company{Name: "Acme"}, Location: job.Location{IsRemote: true}}
	NewJobNotifier(hub).JobPosted(j)

	select {
	case msg := <-client.send:
		var evt JobPostedEvent
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if evt.Type != EventJobPosted || evt.JobID != j.ID || !evt.IsRemote {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no broadcast received")
	}

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-client.send; ok {
		t.Fatalf("expected send channel to be closed")
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast([]byte("x"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_StopsOnCancel(t *testing.T) {
	hub := NewHub(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("hub did not stop")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("expected clients to be released")
	}
}

func TestJobNotifier_NilSafe(t *testing.T) {
	var n *JobNotifier
	n.JobPosted(job.Job{})
	NewJobNotifier(nil).JobPosted(job.Job{})
}
