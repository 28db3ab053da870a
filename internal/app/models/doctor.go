package models

// WorkingHours bounds slot generation for a single day. Start and End are
// times of day in HH:MM, no overnight wraparound.
type WorkingHours struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

type Doctor struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	Name           string       `json:"name" bson:"name"`
	Specialization string       `json:"specialization,omitempty" bson:"specialization,omitempty"`
	WorkingHours   WorkingHours `json:"workingHours" bson:"workingHours"`
	TimeModel      `bson:",inline"`
}
