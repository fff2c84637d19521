package models

import (
	"errors"
	"fmt"
)

// Mode selects the prompt template, generation parameters and parsing strategy of a call
type Mode int

const (
	ModeRecommendation Mode = iota + 1
	ModeChat
	ModeMarketTrends
)

// ErrUnknownMode is returned when a mode name does not match any supported mode
var ErrUnknownMode = errors.New("unknown mode")

// String returns the wire name of the mode
func (m Mode) String() string {
	switch m {
	case ModeRecommendation:
		return "recommendation"
	case ModeChat:
		return "chat"
	case ModeMarketTrends:
		return "market_trends"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name
func ParseMode(name string) (Mode, error) {
	for _, m := range AllModes() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// AllModes lists every supported mode in declaration order
func AllModes() []Mode {
	return []Mode{ModeRecommendation, ModeChat, ModeMarketTrends}
}

// GenerationParams are the per-mode sampling settings sent to the completion service
type GenerationParams struct {
	Temperature     float32 `yaml:"temperature" json:"temperature"`
	MaxOutputTokens int32   `yaml:"max_output_tokens" json:"max_output_tokens"`
	SearchAugmented bool    `yaml:"search_augmented" json:"search_augmented"`
}

// CompletionRequest is a single outbound call to a completion provider
type CompletionRequest struct {
	Mode   Mode
	Prompt string
	Params GenerationParams
}
