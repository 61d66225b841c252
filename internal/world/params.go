package world

import (
	"errors"
	"fmt"
)

const (
	// Default arena dimensions
	DefaultWidth  = 100
	DefaultHeight = 100

	DefaultRoomCount = 5

	// DefaultMaxPlacementAttempts bounds the candidates sampled per room.
	DefaultMaxPlacementAttempts = 1000

	// minRoomSide keeps half-open room bounds non-empty.
	minRoomSide = 2
)

var (
	// ErrInvalidParams is returned when generation parameters cannot describe a valid arena.
	ErrInvalidParams = errors.New("invalid generation parameters")
	// ErrRoomPlacement is returned when a room cannot be placed within the attempt budget.
	ErrRoomPlacement = errors.New("could not place room")
	// ErrDisconnected is returned when a finished level leaves a room unreachable.
	ErrDisconnected = errors.New("level is not connected")
)

// Params holds the inputs of a generation run.
type Params struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	RoomCount int `json:"roomCount"`

	// MinRoomSize is inclusive and MaxRoomSize exclusive on each axis.
	MinRoomSize Size `json:"minRoomSize"`
	MaxRoomSize Size `json:"maxRoomSize"`

	MaxPlacementAttempts int  `json:"maxPlacementAttempts"`
	Widen                bool `json:"widen"`
}

// DefaultParams returns the stock arena configuration.
func DefaultParams() Params {
	return Params{
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		RoomCount:            DefaultRoomCount,
		MinRoomSize:          Size{W: 5, H: 5},
		MaxRoomSize:          Size{W: 10, H: 10},
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
		Widen:                true,
	}
}

// Validate checks that the parameters describe a generatable arena.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	if p.RoomCount < 0 {
		return fmt.Errorf("%w: negative room count %d", ErrInvalidParams, p.RoomCount)
	}
	if p.MaxPlacementAttempts <= 0 {
		return fmt.Errorf("%w: placement attempts must be positive, got %d", ErrInvalidParams, p.MaxPlacementAttempts)
	}
	if p.RoomCount == 0 {
		return nil
	}
	if p.MinRoomSize.W < minRoomSide || p.MinRoomSize.H < minRoomSide {
		return fmt.Errorf("%w: minimum room size %dx%d is below %d", ErrInvalidParams,
			p.MinRoomSize.W, p.MinRoomSize.H, minRoomSide)
	}
	if p.MaxRoomSize.W < p.MinRoomSize.W || p.MaxRoomSize.H < p.MinRoomSize.H {
		return fmt.Errorf("%w: maximum room size %dx%d is below minimum %dx%d", ErrInvalidParams,
			p.MaxRoomSize.W, p.MaxRoomSize.H, p.MinRoomSize.W, p.MinRoomSize.H)
	}
	// The largest room that can be sampled must still have a valid center range.
	largest := p.largestRoom()
	if largest.W/2 >= p.Width-largest.W/2 || largest.H/2 >= p.Height-largest.H/2 {
		return fmt.Errorf("%w: room size up to %dx%d does not fit a %dx%d grid", ErrInvalidParams,
			largest.W, largest.H, p.Width, p.Height)
	}
	return nil
}

// largestRoom returns the biggest size sampleRoom can produce.
func (p Params) largestRoom() Size {
	s := p.MinRoomSize
	if p.MaxRoomSize.W > p.MinRoomSize.W {
		s.W = p.MaxRoomSize.W - 1
	}
	if p.MaxRoomSize.H > p.MinRoomSize.H {
		s.H = p.MaxRoomSize.H - 1
	}
	return s
}
