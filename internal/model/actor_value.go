package model

// ActorValue identifies a numeric attribute on an actor.
// Only the five attributes touched by the combat overlay are modelled.
type ActorValue int32

const (
	AVMarksman ActorValue = iota
	AVAttackAngleMult
	AVAimOffsetV
	AVAimSightedDelay
	AVCombatHealthRegenMult
)

// OverlayValues lists the attributes captured in a baseline snapshot, in write order.
var OverlayValues = [...]ActorValue{
	AVMarksman,
	AVAttackAngleMult,
	AVAimOffsetV,
	AVAimSightedDelay,
	AVCombatHealthRegenMult,
}

// String returns the engine-side attribute name.
func (av ActorValue) String() string {
	switch av {
	case AVMarksman:
		return "Marksman"
	case AVAttackAngleMult:
		return "AttackAngleMult"
	case AVAimOffsetV:
		return "AimOffset_V"
	case AVAimSightedDelay:
		return "AimSightedDelay"
	case AVCombatHealthRegenMult:
		return "CombatHealthRegenMult"
	default:
		return "Unknown"
	}
}

// ParseActorValue is the inverse of ActorValue.String.
func ParseActorValue(name string) (ActorValue, bool) {
	for _, av := range OverlayValues {
		if av.String() == name {
			return av, true
		}
	}
	return 0, false
}
