// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// HTTP delivery layer for the consumer athlete profile API.
//
// These endpoints front the mobile app. Authentication for the consumer
// surface is handled by an external identity provider upstream of this
// service, so there is no permission gate here — the admin surface in
// internal/admin/users is the guarded one.
package athlete

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/athloshq/athlos/internal/platform/request"
	"github.com/athloshq/athlos/internal/platform/respond"
	"github.com/athloshq/athlos/internal/platform/validate"
	"github.com/athloshq/athlos/pkg/convert"
)

// # Definitions & Constructors

// Handler implements consumer athlete profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with athlete profile routes.
//
// # Endpoints
//   - GET    /         : Lists profiles (skip/limit, active_only).
//   - POST   /         : Registers a profile.
//   - GET    /{id}     : Returns one profile.
//   - PUT    /{id}     : Updates a profile.
//   - DELETE /{id}     : Deactivates a profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createAthleteRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	profilePatchRequest
}

type updateAthleteRequest struct {
	FullName *string `json:"full_name"`
	profilePatchRequest
}

type profilePatchRequest struct {
	Phone                 *string `json:"phone"`
	Gender                *string `json:"gender"`
	HeightCM              *int    `json:"height"`
	WeightKG              *int    `json:"weight"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	Country               *string `json:"country"`
	PrimarySport          *string `json:"primary_sport"`
	SecondarySports       *string `json:"secondary_sports"`
	ExperienceLevel       *string `json:"experience_level"`
	YearsOfExperience     *int    `json:"years_of_experience"`
	CurrentTeam           *string `json:"current_team"`
	TrainingGoals         *string `json:"training_goals"`
	PreferredTrainingTime *string `json:"preferred_training_time"`
}

func (p profilePatchRequest) toPatch() ProfilePatch {
	return ProfilePatch{
		Phone:                 p.Phone,
		Gender:                p.Gender,
		HeightCM:              p.HeightCM,
		WeightKG:              p.WeightKG,
		City:                  p.City,
		State:                 p.State,
		Country:               p.Country,
		PrimarySport:          p.PrimarySport,
		SecondarySports:       p.SecondarySports,
		ExperienceLevel:       p.ExperienceLevel,
		YearsOfExperience:     p.YearsOfExperience,
		CurrentTeam:           p.CurrentTeam,
		TrainingGoals:         p.TrainingGoals,
		PreferredTrainingTime: p.PreferredTrainingTime,
	}
}

// validatePatch checks the enum-constrained optional fields.
func validatePatch(validator *validate.Validator, p profilePatchRequest) {
	if p.Gender != nil {
		validator.OneOf(FieldGender, *p.Gender, GenderMale, GenderFemale, GenderOther)
	}
	if p.ExperienceLevel != nil {
		validator.OneOf(FieldExperienceLevel, *p.ExperienceLevel,
			ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceProfessional)
	}
}

// # Endpoints

/*
list returns an offset/limit page of athlete profiles.

GET /api/v1/athletes?skip=0&limit=20&active_only=true
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()

	params := ListParams{
		Offset:     convert.ToInt(queryValues.Get("skip")),
		Limit:      convert.ToIntD(queryValues.Get("limit"), 20),
		ActiveOnly: convert.ToBool(queryValues.Get("active_only")),
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	athletes, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, athletes)
}

/*
create registers a new athlete profile.

POST /api/v1/athletes
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createAthleteRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 100)
	validatePatch(validator, input.profilePatchRequest)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	athlete, err := handler.service.Create(request.Context(), CreateInput{
		Email:    input.Email,
		FullName: input.FullName,
		Profile:  input.toPatch(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, athlete)
}

/*
get returns a single athlete profile.

GET /api/v1/athletes/{id}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	athlete, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, athlete)
}

/*
update applies partial changes to an athlete profile.

PUT /api/v1/athletes/{id}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAthleteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.FullName != nil {
		validator.Required(FieldFullName, *input.FullName).MaxLen(FieldFullName, *input.FullName, 100)
	}
	validatePatch(validator, input.profilePatchRequest)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	athlete, err := handler.service.Update(request.Context(), id, input.FullName, input.toPatch())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, athlete)
}

/*
remove deactivates an athlete profile (soft delete).

DELETE /api/v1/athletes/{id}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Deactivate(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
