package model

// Snapshot is one immutable set of collections handed to the engine.
type Snapshot struct {
	User          User           `json:"user" validate:"required"`
	Projects      []Project      `json:"projects" validate:"dive"`
	Clients       []Client       `json:"clients" validate:"dive"`
	Invoices      []Invoice      `json:"invoices" validate:"dive"`
	Tasks         []Task         `json:"tasks" validate:"dive"`
	Notifications []Notification `json:"notifications" validate:"dive"`
	Activities    []Activity     `json:"activities" validate:"dive"`
}
