package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaadi/middleware"
	"gaadi/models"
	"gaadi/storage"
)

// RegistrationForm is the submission that completes (or refreshes) a
// vehicle profile. Every field is mandatory; a submission that binds
// is by definition a completed registration.
type RegistrationForm struct {
	FullName       string `json:"fullName" binding:"required"`
	DrivingLicense string `json:"drivingLicense" binding:"required"`
	RoadPermit     string `json:"roadPermit" binding:"required"`
	NationalID     string `json:"nationalId" binding:"required"`
	Gender         string `json:"gender" binding:"required"`
	ContactNumber  string `json:"contactNumber" binding:"required"`
	VehicleNumber  string `json:"vehicleNumber" binding:"required"`
}

// ListVehicles handles GET /api/vehicle. The gate calls this with
// ?gmail= to read a single identity's profile status.
func (h *Handler) ListVehicles(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var (
		profiles []models.Profile
		err      error
	)
	if owner := c.Query("gmail"); owner != "" {
		profiles, err = h.store.Profiles().ListByOwner(ctx, owner)
	} else {
		profiles, err = h.store.Profiles().List(ctx)
	}
	if err != nil {
		h.storeError(c, err, "list vehicles")
		return
	}

	respondData(c, http.StatusOK, profiles)
}

// UpsertVehicle handles POST /api/vehicle: the registration
// submission. One profile per identity; re-submissions overwrite the
// writable fields. A successful submission always leaves the profile
// enabled.
func (h *Handler) UpsertVehicle(c *gin.Context) {
	var form RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	email := middleware.Identity(c)
	existing, err := h.store.Profiles().GetByOwner(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.storeError(c, err, "vehicle upsert lookup")
		return
	}

	if existing != nil {
		existing.FullName = form.FullName
		existing.DrivingLicense = form.DrivingLicense
		existing.RoadPermit = form.RoadPermit
		existing.NationalID = form.NationalID
		existing.Gender = form.Gender
		existing.ContactNumber = form.ContactNumber
		existing.VehicleNumber = form.VehicleNumber
		existing.VehicleID = models.VehicleKey(form.VehicleNumber)
		existing.Status = models.StatusEnabled

		if err := h.store.Profiles().Replace(ctx, existing); err != nil {
			h.storeError(c, err, "vehicle upsert update")
			return
		}
		respondMessage(c, http.StatusOK, "Updated vehicle profile", existing)
		return
	}

	profile := models.Profile{
		VehicleID:      models.VehicleKey(form.VehicleNumber),
		OwnerEmail:     email,
		OwnerName:      middleware.IdentityName(c),
		Status:         models.StatusEnabled,
		FullName:       form.FullName,
		DrivingLicense: form.DrivingLicense,
		RoadPermit:     form.RoadPermit,
		NationalID:     form.NationalID,
		Gender:         form.Gender,
		ContactNumber:  form.ContactNumber,
		VehicleNumber:  form.VehicleNumber,
	}

	if err := h.store.Profiles().Create(ctx, &profile); err != nil {
		h.storeError(c, err, "vehicle upsert create")
		return
	}
	respondMessage(c, http.StatusCreated, "Created vehicle profile", profile)
}

// GetVehicleBundle handles GET /api/vehicle/:id. It returns the
// combined view over the profile and its extended details, keyed by
// vehicle key.
func (h *Handler) GetVehicleBundle(c *gin.Context) {
	key := c.Param("id")

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, perr := h.store.Profiles().GetByKey(ctx, key)
	if perr != nil && !errors.Is(perr, storage.ErrNotFound) {
		h.storeError(c, perr, "vehicle bundle profile")
		return
	}
	details, derr := h.store.Details().GetByVehicleID(ctx, key)
	if derr != nil && !errors.Is(derr, storage.ErrNotFound) {
		h.storeError(c, derr, "vehicle bundle details")
		return
	}

	if profile == nil && details == nil {
		respondError(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	bundle := gin.H{
		"vehicleId":    key,
		"basicInfo":    profile,
		"detailedInfo": details,
	}
	if profile != nil {
		bundle["createdAt"] = profile.CreatedAt
		bundle["updatedAt"] = profile.UpdatedAt
	} else {
		bundle["createdAt"] = details.CreatedAt
		bundle["updatedAt"] = details.UpdatedAt
	}

	respondData(c, http.StatusOK, bundle)
}

type CreateDetailsRequest struct {
	Routes  []models.Route     `json:"routes"`
	Drivers []models.Driver    `json:"drivers"`
	Vehicle models.VehicleInfo `json:"vehicle"`
}

// CreateVehicleDetails handles POST /api/vehicle/:id, creating the
// extended record under the vehicle key with the caller as owner.
func (h *Handler) CreateVehicleDetails(c *gin.Context) {
	key := c.Param("id")

	var req CreateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	details := models.ProfileDetails{
		VehicleID:  key,
		OwnerEmail: middleware.Identity(c),
		Routes:     req.Routes,
		Drivers:    req.Drivers,
		Vehicle:    req.Vehicle,
	}
	if details.Routes == nil {
		details.Routes = []models.Route{}
	}
	if details.Drivers == nil {
		details.Drivers = []models.Driver{}
	}
	if details.Vehicle.Images == nil {
		details.Vehicle.Images = []string{}
	}

	if err := h.store.Details().Create(ctx, &details); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			respondError(c, http.StatusConflict, "Vehicle details already exist for this id")
			return
		}
		h.storeError(c, err, "create vehicle details")
		return
	}

	respondMessage(c, http.StatusCreated, "Vehicle details created successfully", details)
}

// DeleteVehicleBundle handles DELETE /api/vehicle/:id, the
// coordinated delete across both collections. Only the owner may do
// this.
func (h *Handler) DeleteVehicleBundle(c *gin.Context) {
	key := c.Param("id")
	email := middleware.Identity(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, perr := h.store.Profiles().GetByKey(ctx, key)
	if perr != nil && !errors.Is(perr, storage.ErrNotFound) {
		h.storeError(c, perr, "vehicle delete profile lookup")
		return
	}
	details, derr := h.store.Details().GetByVehicleID(ctx, key)
	if derr != nil && !errors.Is(derr, storage.ErrNotFound) {
		h.storeError(c, derr, "vehicle delete details lookup")
		return
	}

	if profile == nil && details == nil {
		respondError(c, http.StatusNotFound, "Vehicle not found")
		return
	}
	if profile != nil && profile.OwnerEmail != email {
		respondError(c, http.StatusForbidden, "You can only delete your own vehicle")
		return
	}
	if profile == nil && details.OwnerEmail != email {
		respondError(c, http.StatusForbidden, "You can only delete your own vehicle")
		return
	}

	if profile != nil {
		if err := h.store.Profiles().DeleteByVehicleID(ctx, profile.VehicleID); err != nil {
			h.storeError(c, err, "vehicle delete profile")
			return
		}
	}
	if err := h.store.Details().DeleteByVehicleID(ctx, key); err != nil {
		h.storeError(c, err, "vehicle delete details")
		return
	}

	respondMessage(c, http.StatusOK, "Vehicle deleted successfully", nil)
}
