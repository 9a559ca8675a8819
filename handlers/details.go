package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaadi/middleware"
	"gaadi/models"
)

// Action is the closed set of partial-update operations on a
// ProfileDetails document. Anything else is rejected before the store
// is touched.
type Action string

const (
	ActionUpdateDriver       Action = "updateDriver"
	ActionAddDriver          Action = "addDriver"
	ActionRemoveDriver       Action = "removeDriver"
	ActionAddRoute           Action = "addRoute"
	ActionRemoveRoute        Action = "removeRoute"
	ActionUpdateVehicleInfo  Action = "updateVehicleInfo"
	ActionAddVehicleImage    Action = "addVehicleImage"
	ActionRemoveVehicleImage Action = "removeVehicleImage"
)

type DetailsUpdateRequest struct {
	ID      string          `json:"id" binding:"required"`
	Action  Action          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

type updateDriverPayload struct {
	DriverID string        `json:"driverId"`
	Updates  models.Driver `json:"updates"`
}

type addDriverPayload struct {
	Driver models.Driver `json:"driverObject"`
}

type removeDriverPayload struct {
	DriverID string `json:"driverId"`
}

type addRoutePayload struct {
	Route models.Route `json:"routeObject"`
}

type removeRoutePayload struct {
	RouteID string `json:"routeId"`
}

type imagePayload struct {
	URL string `json:"url"`
}

// UpdateVehicleDetails handles PUT /api/vehicleDetails: one named
// operation applied atomically to the caller's own document. The
// not-found response is the same whether the document is missing or
// owned by someone else.
func (h *Handler) UpdateVehicleDetails(c *gin.Context) {
	var req DetailsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	docID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid document id")
		return
	}

	owner := middleware.Identity(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	var updated *models.ProfileDetails

	switch req.Action {
	case ActionUpdateDriver:
		var p updateDriverPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		driverID, err := primitive.ObjectIDFromHex(p.DriverID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid driver id")
			return
		}
		updated, err = h.store.Details().UpdateDriver(ctx, docID, owner, driverID, p.Updates)
		if err != nil {
			h.storeError(c, err, "updateDriver")
			return
		}

	case ActionAddDriver:
		var p addDriverPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		updated, err = h.store.Details().AddDriver(ctx, docID, owner, p.Driver)
		if err != nil {
			h.storeError(c, err, "addDriver")
			return
		}

	case ActionRemoveDriver:
		var p removeDriverPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		driverID, err := primitive.ObjectIDFromHex(p.DriverID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid driver id")
			return
		}
		updated, err = h.store.Details().RemoveDriver(ctx, docID, owner, driverID)
		if err != nil {
			h.storeError(c, err, "removeDriver")
			return
		}

	case ActionAddRoute:
		var p addRoutePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		updated, err = h.store.Details().AddRoute(ctx, docID, owner, p.Route)
		if err != nil {
			h.storeError(c, err, "addRoute")
			return
		}

	case ActionRemoveRoute:
		var p removeRoutePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		routeID, err := primitive.ObjectIDFromHex(p.RouteID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid route id")
			return
		}
		updated, err = h.store.Details().RemoveRoute(ctx, docID, owner, routeID)
		if err != nil {
			h.storeError(c, err, "removeRoute")
			return
		}

	case ActionUpdateVehicleInfo:
		var v models.VehicleInfo
		if err := json.Unmarshal(req.Payload, &v); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		updated, err = h.store.Details().SetVehicleInfo(ctx, docID, owner, v)
		if err != nil {
			h.storeError(c, err, "updateVehicleInfo")
			return
		}

	case ActionAddVehicleImage:
		var p imagePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.URL == "" {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		updated, err = h.store.Details().AddVehicleImage(ctx, docID, owner, p.URL)
		if err != nil {
			h.storeError(c, err, "addVehicleImage")
			return
		}

	case ActionRemoveVehicleImage:
		var p imagePayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.URL == "" {
			respondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		updated, err = h.store.Details().RemoveVehicleImage(ctx, docID, owner, p.URL)
		if err != nil {
			h.storeError(c, err, "removeVehicleImage")
			return
		}

	default:
		respondError(c, http.StatusBadRequest, "Invalid action")
		return
	}

	respondData(c, http.StatusOK, updated)
}
