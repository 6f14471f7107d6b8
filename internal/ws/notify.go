package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groweasy/internal/domain/job"
)

const EventJobPosted = "job_posted"

type JobPostedEvent struct {
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"jobId"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	City      string    `json:"city,omitempty"`
	IsRemote  bool      `json:"isRemote"`
	JobType   string    `json:"jobType"`
	Timestamp string    `json:"timestamp"`
}

// JobNotifier turns new postings into hub broadcasts.
type JobNotifier struct {
	hub *Hub
	now func() time.Time
}

func NewJobNotifier(hub *Hub) *JobNotifier {
	return &JobNotifier{hub: hub, now: time.Now}
}

func (n *JobNotifier) JobPosted(j job.Job) {
	if n == nil || n.hub == nil {
		return
	}
	evt := JobPostedEvent{
		Type:      EventJobPosted,
		JobID:     j.ID,
		Title:     j.Title,
		Company:   j.Company.Name,
		City:      j.Location.City,
		IsRemote:  j.Location.IsRemote,
		JobType:   j.JobType,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.hub.log.Warn("job event marshal failed", zap.Error(err))
		return
	}
	n.hub.Broadcast(b)
}
