package domain

import (
	"fmt"

	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// Slot represents a one-hour window available for a test drive
type Slot struct {
	ID        string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// NewSlot строит слот с идентификатором вида "HH:MM-HH:MM"
func NewSlot(start, end types.TimeString) Slot {
	return Slot{
		ID:        fmt.Sprintf("%s-%s", start, end),
		StartTime: start,
		EndTime:   end,
	}
}
