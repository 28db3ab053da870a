package responses

import "time"

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Doctor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Specialization string       `json:"specialization,omitempty"`
	WorkingHours   WorkingHours `json:"workingHours"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Availability keeps the original payload shape: availableSlots is the free
// subset, totalSlots every slot the working hours produce.
type Availability struct {
	AvailableSlots []string `json:"availableSlots"`
	TotalSlots     []string `json:"totalSlots"`
}
