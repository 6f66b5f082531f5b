package ports

import "github.com/vinwatch/vinwatch/internal/domain"

// Indicator drives the local LED/LCD outputs. Exactly one of the
// green/yellow/red outputs is active per state. Show is idempotent:
// repeating an unchanged state must not produce observable flicker.
type Indicator interface {
	Show(state domain.OperatingState, r domain.Reading)

	// ShowFault signals a sensor fault locally (blink pattern / notice line).
	ShowFault()
}
