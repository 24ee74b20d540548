package model

import "fmt"

// FormID is the host engine's stable runtime identifier for actors and items.
// The high byte carries the plugin load-order index, the low 24 bits the local ID.
type FormID uint32

// NoForm is the zero identifier (nothing equipped, no target).
const NoForm FormID = 0

// NewFormID composes a runtime FormID from a load-order index and a local ID.
func NewFormID(loadIndex uint8, localID uint32) FormID {
	return FormID(uint32(loadIndex)<<24 | localID&0x00FFFFFF)
}

// IsZero reports whether id is NoForm.
func (id FormID) IsZero() bool {
	return id == NoForm
}

func (id FormID) String() string {
	return fmt.Sprintf("%08X", uint32(id))
}
