package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusEnabled  = "enabled"
	StatusDisabled = "disabled"
)

// Profile is the primary registration record for a vehicle owner,
// one per identity (normalized email).
type Profile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID  string             `bson:"vehicleId" json:"vehicleId"` // slug of VehicleNumber, secondary lookup key
	OwnerEmail string             `bson:"ownerEmail" json:"ownerEmail"`
	OwnerName  string             `bson:"ownerName" json:"ownerName"`
	Status     string             `bson:"status" json:"status"` // enabled, disabled

	FullName       string `bson:"fullName" json:"fullName"`
	DrivingLicense string `bson:"drivingLicense" json:"drivingLicense"`
	RoadPermit     string `bson:"roadPermit" json:"roadPermit"`
	NationalID     string `bson:"nationalId" json:"nationalId"`
	Gender         string `bson:"gender" json:"gender"`
	ContactNumber  string `bson:"contactNumber" json:"contactNumber"`
	VehicleNumber  string `bson:"vehicleNumber" json:"vehicleNumber"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// VehicleKey derives the URL-safe slug used as the secondary lookup
// key: whitespace runs become hyphens, everything lowercased.
// "BA 2 PA 4567" -> "ba-2-pa-4567".
func VehicleKey(vehicleNumber string) string {
	trimmed := strings.TrimSpace(vehicleNumber)
	return strings.ToLower(whitespaceRun.ReplaceAllString(trimmed, "-"))
}

// NormalizeEmail lowercases and trims an email so the same identity
// always compares equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
