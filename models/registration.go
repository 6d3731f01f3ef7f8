package models

import "time"

// Registration review states. Pending and approved teams are both bookable;
// only approved teams appear on judge-facing lists.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// TeamMember is one member of a registered team.
type TeamMember struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// TeamRegistration is a team's registration record in the team directory.
type TeamRegistration struct {
	ID           string       `json:"id" bson:"id"`
	TeamName     string       `json:"teamName" bson:"team_name"`
	ProjectName  string       `json:"projectName" bson:"project_name"`
	Description  string       `json:"description" bson:"description"`
	Members      []TeamMember `json:"members" bson:"members"`
	ContactEmail string       `json:"contactEmail" bson:"contact_email"`
	Status       string       `json:"status" bson:"status"`
	AdminNotes   string       `json:"adminNotes" bson:"admin_notes"`
	CompetitorID string       `json:"competitorId,omitempty" bson:"competitor_id,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
	ReviewedAt   *time.Time   `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
}
