package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaadi/middleware"
	"gaadi/models"
	"gaadi/storage"
)

// GetProfile handles GET /api/profile/:id, a public read by vehicle
// key or raw document id.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.store.Profiles().GetByKey(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.storeError(c, err, "get profile")
		return
	}

	respondData(c, http.StatusOK, profile)
}

type ProfilePatch struct {
	FullName       *string `json:"fullName"`
	DrivingLicense *string `json:"drivingLicense"`
	RoadPermit     *string `json:"roadPermit"`
	NationalID     *string `json:"nationalId"`
	Gender         *string `json:"gender"`
	ContactNumber  *string `json:"contactNumber"`
	VehicleNumber  *string `json:"vehicleNumber"`
}

// UpdateProfile handles PUT /api/profile/:id. Owner only; touches the
// allowed fields and keeps the vehicle key in sync with the number.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.store.Profiles().GetByKey(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.storeError(c, err, "update profile lookup")
		return
	}

	if profile.OwnerEmail != middleware.Identity(c) {
		respondError(c, http.StatusForbidden, "You can only update your own vehicle")
		return
	}

	ch := storage.ProfileChanges{
		FullName:       patch.FullName,
		DrivingLicense: patch.DrivingLicense,
		RoadPermit:     patch.RoadPermit,
		NationalID:     patch.NationalID,
		Gender:         patch.Gender,
		ContactNumber:  patch.ContactNumber,
		VehicleNumber:  patch.VehicleNumber,
	}
	if patch.VehicleNumber != nil && *patch.VehicleNumber != profile.VehicleNumber {
		key := models.VehicleKey(*patch.VehicleNumber)
		ch.VehicleID = &key
	}

	if ch.Empty() {
		respondError(c, http.StatusBadRequest, "No valid fields to update")
		return
	}

	updated, err := h.store.Profiles().Update(ctx, profile.ID, ch)
	if err != nil {
		h.storeError(c, err, "update profile")
		return
	}

	respondMessage(c, http.StatusOK, "Vehicle profile updated successfully", updated)
}

// DeleteProfile handles DELETE /api/profile/:id. Owner only; removes
// the Profile record alone (the combined path under /api/vehicle/:id
// coordinates across both collections).
func (h *Handler) DeleteProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.store.Profiles().GetByKey(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.storeError(c, err, "delete profile lookup")
		return
	}

	if profile.OwnerEmail != middleware.Identity(c) {
		respondError(c, http.StatusForbidden, "You can only delete your own vehicle")
		return
	}

	if err := h.store.Profiles().Delete(ctx, profile.ID); err != nil {
		h.storeError(c, err, "delete profile")
		return
	}

	respondMessage(c, http.StatusOK, "Vehicle profile deleted successfully", nil)
}

// GetMyDetails handles GET /api/details: the caller's own profile by
// session identity.
func (h *Handler) GetMyDetails(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.store.Profiles().GetByOwner(ctx, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "No vehicle found for this account")
			return
		}
		h.storeError(c, err, "get my details")
		return
	}

	respondData(c, http.StatusOK, profile)
}
