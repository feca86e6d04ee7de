package models

// Participant is somebody invited to the meeting being scheduled.
type Participant struct {
	Name      string `bson:"name" json:"name" yaml:"name"`
	Email     string `bson:"email" json:"email" yaml:"email"`
	AvatarURL string `bson:"avatarUrl,omitempty" json:"avatarURL,omitempty" yaml:"avatarURL,omitempty"`
}

// ParticipantBusySlots is a participant and the calendar intervals they are busy in.
type ParticipantBusySlots struct {
	Participant      Participant `json:"participant" yaml:"participant"`
	BusySlotsLoading bool        `json:"busySlotsLoading" yaml:"busySlotsLoading"`
	BusySlots        []Interval  `json:"busySlots" yaml:"busySlots"`
}

// ParticipantGeometry is ParticipantBusySlots with the busy intervals laid out.
type ParticipantGeometry struct {
	Participant      Participant `json:"participant"`
	BusySlotsLoading bool        `json:"busySlotsLoading"`
	BusySlots        []Geometry  `json:"busySlots"`
}
