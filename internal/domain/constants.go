package domain

// Well-known numeric property keys enforced by category validation
const (
	NumericPropertyDamage  = "Damage"
	NumericPropertyDefense = "Defense"
)

// Color mapping slots used by conversion rules
const (
	ColorSlotPrimary   = "Primary"
	ColorSlotSecondary = "Secondary"
)

// Record type tags for transactions sent through RecordTransaction
const (
	RecordTypeGameObjectTransfer = "game_object_transfer"
	RecordTypeGameLink           = "game_link_registration"
	RecordTypePlayerRegistration = "player_registration"
)
