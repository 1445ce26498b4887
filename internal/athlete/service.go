// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package athlete

import (
	"context"

	"github.com/athloshq/athlos/internal/platform/apperr"
)

// # Service

// Service implements the consumer-facing athlete profile use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the data required to register a new athlete profile.
// Optional profile fields ride along as pointers and may be nil.
type CreateInput struct {
	Email    string
	FullName string
	Profile  ProfilePatch
}

// ProfilePatch carries optional profile fields for create and update calls.
// A nil pointer means "leave unchanged" on update and "unset" on create.
type ProfilePatch struct {
	Phone                 *string
	Gender                *string
	HeightCM              *int
	WeightKG              *int
	City                  *string
	State                 *string
	Country               *string
	PrimarySport          *string
	SecondarySports       *string
	ExperienceLevel       *string
	YearsOfExperience     *int
	CurrentTeam           *string
	TrainingGoals         *string
	PreferredTrainingTime *string
}

/*
Create registers a new athlete profile.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Athlete: Created entity
  - error: Conflict (if email exists) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Athlete, error) {
	if _, err := service.repository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	athlete := &Athlete{
		Email:    input.Email,
		FullName: input.FullName,
		IsActive: true,
	}
	applyPatch(athlete, input.Profile)
	athlete.ProfileCompleted = athlete.ProfileCompletion() >= 100

	if err := service.repository.Create(context, athlete); err != nil {
		return nil, err
	}

	return athlete, nil
}

/*
Get returns a single profile by ID.
*/
func (service *Service) Get(context context.Context, id int64) (*Athlete, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns an offset/limit page of profiles.
*/
func (service *Service) List(context context.Context, params ListParams) ([]*Athlete, error) {
	return service.repository.List(context, params)
}

/*
Update applies partial changes to an existing profile and recomputes the
profile-completion flag.
*/
func (service *Service) Update(context context.Context, id int64, fullName *string, patch ProfilePatch) (*Athlete, error) {
	athlete, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if fullName != nil {
		athlete.FullName = *fullName
	}
	applyPatch(athlete, patch)
	athlete.ProfileCompleted = athlete.ProfileCompletion() >= 100

	if err := service.repository.Update(context, athlete); err != nil {
		return nil, err
	}

	return athlete, nil
}

/*
Deactivate soft-deletes a profile by clearing its active flag.
*/
func (service *Service) Deactivate(context context.Context, id int64) error {
	return service.repository.SetActive(context, id, false)
}

// applyPatch copies non-nil patch fields onto the entity.
func applyPatch(athlete *Athlete, patch ProfilePatch) {
	if patch.Phone != nil {
		athlete.Phone = patch.Phone
	}
	if patch.Gender != nil {
		athlete.Gender = patch.Gender
	}
	if patch.HeightCM != nil {
		athlete.HeightCM = patch.HeightCM
	}
	if patch.WeightKG != nil {
		athlete.WeightKG = patch.WeightKG
	}
	if patch.City != nil {
		athlete.City = patch.City
	}
	if patch.State != nil {
		athlete.State = patch.State
	}
	if patch.Country != nil {
		athlete.Country = patch.Country
	}
	if patch.PrimarySport != nil {
		athlete.PrimarySport = patch.PrimarySport
	}
	if patch.SecondarySports != nil {
		athlete.SecondarySports = patch.SecondarySports
	}
	if patch.ExperienceLevel != nil {
		athlete.ExperienceLevel = patch.ExperienceLevel
	}
	if patch.YearsOfExperience != nil {
		athlete.YearsOfExperience = patch.YearsOfExperience
	}
	if patch.CurrentTeam != nil {
		athlete.CurrentTeam = patch.CurrentTeam
	}
	if patch.TrainingGoals != nil {
		athlete.TrainingGoals = patch.TrainingGoals
	}
	if patch.PreferredTrainingTime != nil {
		athlete.PreferredTrainingTime = patch.PreferredTrainingTime
	}
}
