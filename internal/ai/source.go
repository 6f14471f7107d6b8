package ai

import "fmt"

// Source identifies which stage of the chain produced a response.
type Source int

const (
	SourcePrimary Source = iota + 1
	SourceLocal
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceLocal:
		return "local"
	case SourceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

func (s Source) MarshalText() ([]byte, error) {
	switch s {
	case SourcePrimary, SourceLocal, SourceFallback:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown ai source %d", int(s))
	}
}

// Response is the text produced by the chain and the stage that produced it.
type Response struct {
	Text   string `json:"text"`
	Source Source `json:"provider"`
}
