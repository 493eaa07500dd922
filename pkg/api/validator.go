package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// gridSide - сторона опорной сетки карты.
const gridSide = 64

func validateCell(x, y int) error {
	if x < 0 || x >= gridSide || y < 0 || y >= gridSide {
		return fmt.Errorf("cell (%d,%d) is outside the %dx%d grid", x, y, gridSide, gridSide)
	}
	return nil
}

func (p PositionPayload) Validate() error {
	return validateCell(p.X, p.Y)
}

func (p InitPayload) Validate() error {
	switch p.Scale {
	case "", "large", "medium", "small", "0", "1", "2":
		return nil
	}
	return fmt.Errorf("unknown map scale %q", p.Scale)
}

func (p UnveilPayload) Validate() error {
	if p.Radius < 0 || p.Radius > gridSide {
		return errors.New("radius out of range")
	}
	return validateCell(p.X, p.Y)
}

func (p SpicePayload) Validate() error {
	return validateCell(p.X, p.Y)
}

func (p WallPayload) Validate() error {
	return validateCell(p.X, p.Y)
}

func (p ConcretePayload) Validate() error {
	if p.Size != 0 && p.Size != 1 && p.Size != 2 {
		return errors.New("slab size must be 1 or 2")
	}
	if p.Owner > 7 {
		return errors.New("owner must be a faction 0..7")
	}
	return validateCell(p.X, p.Y)
}

func (p BloomPayload) Validate() error {
	return validateCell(p.X, p.Y)
}

func (p SpawnPayload) Validate() error {
	switch p.Kind {
	case "unit", "structure":
	default:
		return fmt.Errorf("unknown entity kind %q", p.Kind)
	}
	if p.Faction > 7 {
		return errors.New("faction must be 0..7")
	}
	if p.Footprint < 0 || p.Footprint > 3 {
		return errors.New("footprint must be 1..3")
	}
	return validateCell(p.X, p.Y)
}

func (p RemovePayload) Validate() error {
	if p.Handle == 0 {
		return errors.New("handle is required")
	}
	return nil
}

func (p LinkPayload) Validate() error {
	if p.Handle == 0 {
		return errors.New("handle is required")
	}
	if p.Target == p.Handle || p.ReservedFor == p.Handle || p.Linked == p.Handle {
		return errors.New("entity cannot link to itself")
	}
	return nil
}

func (p EvaluatePayload) Validate() error {
	if p.Handle == 0 {
		return errors.New("handle is required")
	}
	if p.Orientation > 7 {
		return errors.New("orientation must be 0..7")
	}
	return validateCell(p.X, p.Y)
}
