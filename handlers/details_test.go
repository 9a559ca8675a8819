package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaadi/models"
	"gaadi/storage/memstore"
)

func seedDetails(t *testing.T, store *memstore.Store, owner string) *models.ProfileDetails {
	t.Helper()
	d := &models.ProfileDetails{
		VehicleID:  "ba-2-pa-4567",
		OwnerEmail: owner,
		Routes: []models.Route{
			{From: "Kathmandu", To: "Pokhara", DepartureTime: "07:00"},
		},
		Drivers: []models.Driver{
			{Name: "Hari", Age: 34, Gender: "Male", ContactNumber: "9800000000"},
		},
		Vehicle: models.VehicleInfo{
			Name: "Deluxe Coach", Number: "BA 2 PA 4567", Capacity: 40,
			Images: []string{"https://img.example.com/a.jpg"},
		},
	}
	if err := store.Details().Create(context.Background(), d); err != nil {
		t.Fatalf("failed to seed details: %v", err)
	}
	return d
}

func TestEngine_AddThenRemoveDriverRoundTrip(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":     doc.ID.Hex(),
		"action": "addDriver",
		"payload": map[string]interface{}{
			"driverObject": map[string]interface{}{
				"name": "Shyam", "age": 29, "gender": "Male", "contactNumber": "9811111111",
			},
		},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("addDriver: status = %d (%s)", rec.Code, rec.Body.String())
	}

	var after models.ProfileDetails
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(after.Drivers) != 2 {
		t.Fatalf("drivers = %d, want 2", len(after.Drivers))
	}
	if after.Drivers[1].Name != "Shyam" {
		t.Errorf("append order not preserved: %+v", after.Drivers)
	}
	added := after.Drivers[1]

	body = map[string]interface{}{
		"id":      doc.ID.Hex(),
		"action":  "removeDriver",
		"payload": map[string]interface{}{"driverId": added.ID.Hex()},
	}
	rec, env = doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("removeDriver: status = %d (%s)", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(after.Drivers) != 1 || after.Drivers[0].Name != "Hari" {
		t.Errorf("round trip did not restore prior sequence: %+v", after.Drivers)
	}
}

func TestEngine_RemoveAbsentDriverIsNoOp(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":      doc.ID.Hex(),
		"action":  "removeDriver",
		"payload": map[string]interface{}{"driverId": primitive.NewObjectID().Hex()},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (idempotent no-op)", rec.Code)
	}

	var after models.ProfileDetails
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(after.Drivers) != 1 {
		t.Errorf("drivers = %d, want 1 (unchanged)", len(after.Drivers))
	}
}

func TestEngine_UpdateDriver(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")
	driverID := doc.Drivers[0].ID

	body := map[string]interface{}{
		"id":     doc.ID.Hex(),
		"action": "updateDriver",
		"payload": map[string]interface{}{
			"driverId": driverID.Hex(),
			"updates": map[string]interface{}{
				"name": "Hari Prasad", "age": 35, "gender": "Male", "contactNumber": "9800000000",
			},
		},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}

	var after models.ProfileDetails
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if after.Drivers[0].Name != "Hari Prasad" || after.Drivers[0].Age != 35 {
		t.Errorf("driver not replaced: %+v", after.Drivers[0])
	}
	if after.Drivers[0].ID != driverID {
		t.Errorf("driver id changed on update")
	}

	// Updating a driver that is not in the document is not-found.
	body["payload"].(map[string]interface{})["driverId"] = primitive.NewObjectID().Hex()
	rec, _ = doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("absent driver: status = %d, want 404", rec.Code)
	}
}

func TestEngine_UpdateVehicleInfoIsWholesaleReplace(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":      doc.ID.Hex(),
		"action":  "updateVehicleInfo",
		"payload": map[string]interface{}{"name": "Night Bus", "number": "BA 2 PA 4567", "capacity": 36},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}

	var after models.ProfileDetails
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if after.Vehicle.Name != "Night Bus" || after.Vehicle.Capacity != 36 {
		t.Errorf("vehicle not replaced: %+v", after.Vehicle)
	}
	// Replace, not merge: the images list is whatever the payload said.
	if len(after.Vehicle.Images) != 0 {
		t.Errorf("images survived a wholesale replace: %v", after.Vehicle.Images)
	}
}

func TestEngine_VehicleImages(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":      doc.ID.Hex(),
		"action":  "addVehicleImage",
		"payload": map[string]interface{}{"url": "https://img.example.com/b.jpg"},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: status = %d", rec.Code)
	}
	var after models.ProfileDetails
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(after.Vehicle.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(after.Vehicle.Images))
	}

	body["action"] = "removeVehicleImage"
	body["payload"] = map[string]interface{}{"url": "https://img.example.com/a.jpg"}
	rec, env = doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status = %d", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(after.Vehicle.Images) != 1 || after.Vehicle.Images[0] != "https://img.example.com/b.jpg" {
		t.Errorf("images = %v", after.Vehicle.Images)
	}
}

func TestEngine_UnknownActionRejected(t *testing.T) {
	router, store := newTestServer(t)
	token := authToken(t, "ram@example.com")
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":      doc.ID.Hex(),
		"action":  "dropEverything",
		"payload": map[string]interface{}{},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.Error == "" {
		t.Errorf("expected an error message")
	}
}

func TestEngine_ForeignDocumentLooksMissing(t *testing.T) {
	router, store := newTestServer(t)
	doc := seedDetails(t, store, "ram@example.com")

	body := map[string]interface{}{
		"id":     doc.ID.Hex(),
		"action": "addDriver",
		"payload": map[string]interface{}{
			"driverObject": map[string]interface{}{"name": "Mallory", "age": 40, "gender": "Other", "contactNumber": "1"},
		},
	}
	rec, env := doJSON(t, router, "PUT", "/api/vehicleDetails", authToken(t, "mallory@example.com"), body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (indistinguishable from missing)", rec.Code)
	}

	// Same response shape as a genuinely missing document.
	missing := map[string]interface{}{
		"id":     primitive.NewObjectID().Hex(),
		"action": "addDriver",
		"payload": map[string]interface{}{
			"driverObject": map[string]interface{}{"name": "Mallory", "age": 40, "gender": "Other", "contactNumber": "1"},
		},
	}
	rec2, env2 := doJSON(t, router, "PUT", "/api/vehicleDetails", authToken(t, "mallory@example.com"), missing)
	if rec2.Code != rec.Code || env2.Error != env.Error {
		t.Errorf("foreign (%d, %q) vs missing (%d, %q) responses differ",
			rec.Code, env.Error, rec2.Code, env2.Error)
	}
}
