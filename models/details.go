package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileDetails is the extended record for a vehicle: its routes,
// drivers and gallery. Keyed by the same vehicleId slug as Profile and
// owned by the same identity.
type ProfileDetails struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID  string             `bson:"vehicleId" json:"vehicleId"`
	OwnerEmail string             `bson:"ownerEmail" json:"ownerEmail"`

	Routes  []Route     `bson:"routes" json:"routes"`
	Drivers []Driver    `bson:"drivers" json:"drivers"`
	Vehicle VehicleInfo `bson:"vehicle" json:"vehicle"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Route struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From          string             `bson:"from" json:"from"`
	To            string             `bson:"to" json:"to"`
	DepartureTime string             `bson:"departureTime" json:"departureTime"`
}

type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Age           int                `bson:"age" json:"age"`
	Gender        string             `bson:"gender" json:"gender"` // Male, Female, Other
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	ImageURL      string             `bson:"imageUrl" json:"imageUrl"`
}

type VehicleInfo struct {
	Name     string   `bson:"name" json:"name"`
	Number   string   `bson:"number" json:"number"`
	Capacity int      `bson:"capacity" json:"capacity"`
	Images   []string `bson:"images" json:"images"`
}
