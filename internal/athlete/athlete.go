// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

/*
Package athlete implements the athlete profile domain.

An athlete is a consumer-side account: the mobile app creates and maintains
these profiles, while the admin dashboard reads and manages them through the
admin user-management layer. Both surfaces share the repository defined here
so there is exactly one set of SQL over the athletes table.
*/
package athlete

import "time"

// # Domain Entities

// Athlete represents a registered athlete profile on the Athlos platform.
//
// Most profile fields are optional (pointers): the mobile app fills them in
// progressively and ProfileCompleted tracks whether onboarding finished.
type Athlete struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Profile information
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`

	// Physical stats
	HeightCM *int `json:"height,omitempty"`
	WeightKG *int `json:"weight,omitempty"`

	// Location
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Country *string `json:"country,omitempty"`
	Pincode *string `json:"pincode,omitempty"`

	// Sports information
	PrimarySport      *string `json:"primary_sport,omitempty"`
	SecondarySports   *string `json:"secondary_sports,omitempty"` // JSON-encoded list
	ExperienceLevel   *string `json:"experience_level,omitempty"`
	YearsOfExperience *int    `json:"years_of_experience,omitempty"`
	CurrentTeam       *string `json:"current_team,omitempty"`
	CoachName         *string `json:"coach_name,omitempty"`
	CoachContact      *string `json:"coach_contact,omitempty"`

	// Goals and preferences
	TrainingGoals         *string `json:"training_goals,omitempty"` // JSON-encoded list
	PreferredTrainingTime *string `json:"preferred_training_time,omitempty"`
	AvailabilityDays      *string `json:"availability_days,omitempty"` // JSON-encoded list

	// Medical information
	MedicalConditions        *string `json:"medical_conditions,omitempty"`
	Allergies                *string `json:"allergies,omitempty"`
	EmergencyContactName     *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    *string `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation *string `json:"emergency_contact_relation,omitempty"`

	// Profile completion status
	ProfileCompleted bool `json:"profile_completed"`
}

// profileFields returns the onboarding fields counted toward the completion
// percentage shown on the admin dashboard.
func (a *Athlete) profileFields() []bool {
	return []bool{
		a.FullName != "",
		a.Phone != nil,
		a.DateOfBirth != nil,
		a.Gender != nil,
		a.HeightCM != nil,
		a.WeightKG != nil,
		a.City != nil,
		a.PrimarySport != nil,
		a.ExperienceLevel != nil,
		a.TrainingGoals != nil,
	}
}

// ProfileCompletion returns the percentage of onboarding fields that are set.
func (a *Athlete) ProfileCompletion() float64 {
	fields := a.profileFields()
	completed := 0
	for _, set := range fields {
		if set {
			completed++
		}
	}
	return float64(completed) / float64(len(fields)) * 100
}

// # Enumerations

// Recognized experience levels.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
	ExperienceProfessional = "professional"
)

// Recognized gender labels.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// # Field Identifiers

const (
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldPrimarySport    = "primary_sport"
	FieldExperienceLevel = "experience_level"
	FieldGender          = "gender"
	FieldStatus          = "status"
	FieldDays            = "days"
)
