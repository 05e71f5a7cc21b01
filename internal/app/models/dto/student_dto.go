package dto

import "github.com/yigit/isluportal/internal/app/models"

// StudentResponse is the signed-in student's identity block
type StudentResponse struct {
	*models.Account
	FullName        string `json:"fullName" example:"Juan Santos Cruz"`
	CurrentSemester string `json:"currentSemester" example:"FIRST SEMESTER 2025-2026"`
}

// ProfileResponse pairs the parsed profile with the identity block
type ProfileResponse struct {
	Student *models.Account `json:"student"`
	Profile models.Profile  `json:"profile"`
}

// UpdateProfileRequest changes any subset of the profile fields. Omitted
// fields keep their current value.
type UpdateProfileRequest struct {
	Gender          *string `json:"gender" binding:"omitempty,max=60"`
	Citizenship     *string `json:"citizenship" binding:"omitempty,max=60"`
	Religion        *string `json:"religion" binding:"omitempty,max=60"`
	CivilStatus     *string `json:"civilStatus" binding:"omitempty,max=60"`
	Birthplace      *string `json:"birthplace" binding:"omitempty,max=120"`
	Nationality     *string `json:"nationality" binding:"omitempty,max=60"`
	HomeAddress     *string `json:"homeAddress" binding:"omitempty,max=200"`
	HomeTel         *string `json:"homeTel" binding:"omitempty,max=30"`
	BaguioAddress   *string `json:"baguioAddress" binding:"omitempty,max=200"`
	BaguioTel       *string `json:"baguioTel" binding:"omitempty,max=30"`
	Cellphone       *string `json:"cellphone" binding:"omitempty,max=30"`
	FatherName      *string `json:"fatherName" binding:"omitempty,max=120"`
	FatherOcc       *string `json:"fatherOccupation" binding:"omitempty,max=120"`
	MotherName      *string `json:"motherName" binding:"omitempty,max=120"`
	MotherOcc       *string `json:"motherOccupation" binding:"omitempty,max=120"`
	GuardianName    *string `json:"guardianName" binding:"omitempty,max=120"`
	GuardianAddress *string `json:"guardianAddress" binding:"omitempty,max=200"`
}

// Updates returns the set fields keyed by profile key
func (r *UpdateProfileRequest) Updates() map[string]string {
	fields := map[string]*string{
		models.ProfileGender:          r.Gender,
		models.ProfileCitizenship:     r.Citizenship,
		models.ProfileReligion:        r.Religion,
		models.ProfileCivilStatus:     r.CivilStatus,
		models.ProfileBirthplace:      r.Birthplace,
		models.ProfileNationality:     r.Nationality,
		models.ProfileHomeAddress:     r.HomeAddress,
		models.ProfileHomeTel:         r.HomeTel,
		models.ProfileBaguioAddress:   r.BaguioAddress,
		models.ProfileBaguioTel:       r.BaguioTel,
		models.ProfileCellphone:       r.Cellphone,
		models.ProfileFatherName:      r.FatherName,
		models.ProfileFatherOcc:       r.FatherOcc,
		models.ProfileMotherName:      r.MotherName,
		models.ProfileMotherOcc:       r.MotherOcc,
		models.ProfileGuardianName:    r.GuardianName,
		models.ProfileGuardianAddress: r.GuardianAddress,
	}

	updates := make(map[string]string)
	for key, v := range fields {
		if v != nil {
			updates[key] = *v
		}
	}
	return updates
}
