package profile

import (
	"github.com/smilepoint/clinic-api/internal/platform/timeutil"
)

// Profile represents a patient profile response.
type Profile struct {
	ID           string        `json:"id"           doc:"Unique identifier"      example:"user-123"`
	Name         string        `json:"name"         doc:"Display name"           example:"Jane Doe"`
	Email        string        `json:"email"        doc:"Email address"          example:"jane@example.com"`
	Phone        string        `json:"phone"        doc:"Phone number"           example:"+358401234567"`
	Age          string        `json:"age"          doc:"Age"                    example:"34"`
	DateOfBirth  string        `json:"dob"          doc:"Date of birth"          example:"1992-03-20"`
	Address      string        `json:"address"      doc:"Postal address"         example:"12 Elm Street"`
	Gender       string        `json:"gender"       doc:"Gender"                 example:"female"`
	PhotoURL     string        `json:"photoUrl"     doc:"Avatar URL"             example:"https://example.com/a.jpg"`
	Role         string        `json:"role"         doc:"Account role"           example:"patient"`
	AuthProvider string        `json:"authProvider" doc:"Sign-in method"         example:"password"`
	CreatedAt    timeutil.Time `json:"createdAt"    doc:"Creation timestamp"     example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt    timeutil.Time `json:"updatedAt"    doc:"Last update timestamp"  example:"2024-01-15T10:30:00.000Z"`
	LastLogin    timeutil.Time `json:"lastLogin"    doc:"Last sign-in timestamp" example:"2024-01-15T10:30:00.000Z"`
}
