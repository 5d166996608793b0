package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Athlete is an authenticated runner, linked to the identity provider by FirebaseID.
type Athlete struct {
	bun.BaseModel `bun:"table:athletes,alias:ath"`

	ID           string    `bun:"id,pk,type:uuid" json:"id"`
	FirebaseID   string    `bun:"firebase_id,notnull,unique" json:"firebaseId"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	FirstName    string    `bun:"first_name" json:"firstName"`
	LastName     string    `bun:"last_name" json:"lastName"`
	PhotoURL     *string   `bun:"photo_url" json:"photoURL"`
	GofastHandle *string   `bun:"gofast_handle,unique" json:"gofastHandle"`
	City         *string   `bun:"city" json:"city"`
	State        *string   `bun:"state" json:"state"`
	PrimarySport *string   `bun:"primary_sport" json:"primarySport"`
	Bio          *string   `bun:"bio" json:"bio"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Profile *Profile `bun:"rel:has-one,join:id=athlete_id" json:"profile,omitempty"`
}

// FullName joins first and last name.
func (a *Athlete) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
