package models

// Account is one line of the account file: the identity block, the password
// and an optional profile blob kept after the first '|'.
type Account struct {
	ID          string `json:"id"`
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	DateOfBirth string `json:"dateOfBirth"`
	Password    string `json:"-"`
	// ProfileBlob is the raw key=value;... text. Empty when the line has no '|'.
	ProfileBlob string `json:"-"`
	HasProfile  bool   `json:"-"`
}

// FullName returns "First Middle Last", skipping an empty middle name
func (a *Account) FullName() string {
	if a.MiddleName == "" {
		return a.FirstName + " " + a.LastName
	}
	return a.FirstName + " " + a.MiddleName + " " + a.LastName
}

// Credential is one line of the credential mirror file
type Credential struct {
	StudentID string
	Password  string
}

// Profile keys in the order they are written back to the blob
const (
	ProfileGender          = "Gender"
	ProfileCitizenship     = "Citizenship"
	ProfileReligion        = "Religion"
	ProfileCivilStatus     = "CivilStatus"
	ProfileBirthplace      = "Birthplace"
	ProfileNationality     = "Nationality"
	ProfileHomeAddress     = "HomeAddress"
	ProfileHomeTel         = "HomeTel"
	ProfileBaguioAddress   = "BaguioAddress"
	ProfileBaguioTel       = "BaguioTel"
	ProfileCellphone       = "Cellphone"
	ProfileFatherName      = "FatherName"
	ProfileFatherOcc       = "FatherOcc"
	ProfileMotherName      = "MotherName"
	ProfileMotherOcc       = "MotherOcc"
	ProfileGuardianName    = "GuardianName"
	ProfileGuardianAddress = "GuardianAddress"
)

// ProfileKeys lists every recognised profile key in blob order
var ProfileKeys = []string{
	ProfileGender,
	ProfileCitizenship,
	ProfileReligion,
	ProfileCivilStatus,
	ProfileBirthplace,
	ProfileNationality,
	ProfileHomeAddress,
	ProfileHomeTel,
	ProfileBaguioAddress,
	ProfileBaguioTel,
	ProfileCellphone,
	ProfileFatherName,
	ProfileFatherOcc,
	ProfileMotherName,
	ProfileMotherOcc,
	ProfileGuardianName,
	ProfileGuardianAddress,
}

// ProfilePlaceholder fills any profile field without a specific default
const ProfilePlaceholder = "None"

var profileDefaults = map[string]string{
	ProfileGender:      "Male",
	ProfileCitizenship: "Filipino",
	ProfileReligion:    "Roman Catholic",
	ProfileCivilStatus: "Single",
	ProfileNationality: "Filipino",
}

// ProfileDefault returns the value shown for key when the blob omits it
func ProfileDefault(key string) string {
	if v, ok := profileDefaults[key]; ok {
		return v
	}
	return ProfilePlaceholder
}

// Profile holds the extended personal information of an account
type Profile struct {
	Gender          string `json:"gender"`
	Citizenship     string `json:"citizenship"`
	Religion        string `json:"religion"`
	CivilStatus     string `json:"civilStatus"`
	Birthplace      string `json:"birthplace"`
	Nationality     string `json:"nationality"`
	HomeAddress     string `json:"homeAddress"`
	HomeTel         string `json:"homeTel"`
	BaguioAddress   string `json:"baguioAddress"`
	BaguioTel       string `json:"baguioTel"`
	Cellphone       string `json:"cellphone"`
	FatherName      string `json:"fatherName"`
	FatherOcc       string `json:"fatherOccupation"`
	MotherName      string `json:"motherName"`
	MotherOcc       string `json:"motherOccupation"`
	GuardianName    string `json:"guardianName"`
	GuardianAddress string `json:"guardianAddress"`
}

// DefaultProfile returns a profile with every field at its default
func DefaultProfile() Profile {
	var p Profile
	for _, key := range ProfileKeys {
		p.Set(key, ProfileDefault(key))
	}
	return p
}

func (p *Profile) field(key string) *string {
	switch key {
	case ProfileGender:
		return &p.Gender
	case ProfileCitizenship:
		return &p.Citizenship
	case ProfileReligion:
		return &p.Religion
	case ProfileCivilStatus:
		return &p.CivilStatus
	case ProfileBirthplace:
		return &p.Birthplace
	case ProfileNationality:
		return &p.Nationality
	case ProfileHomeAddress:
		return &p.HomeAddress
	case ProfileHomeTel:
		return &p.HomeTel
	case ProfileBaguioAddress:
		return &p.BaguioAddress
	case ProfileBaguioTel:
		return &p.BaguioTel
	case ProfileCellphone:
		return &p.Cellphone
	case ProfileFatherName:
		return &p.FatherName
	case ProfileFatherOcc:
		return &p.FatherOcc
	case ProfileMotherName:
		return &p.MotherName
	case ProfileMotherOcc:
		return &p.MotherOcc
	case ProfileGuardianName:
		return &p.GuardianName
	case ProfileGuardianAddress:
		return &p.GuardianAddress
	}
	return nil
}

// Get returns the value stored under key, or "" for an unknown key
func (p *Profile) Get(key string) string {
	if f := p.field(key); f != nil {
		return *f
	}
	return ""
}

// Set stores value under key and reports whether the key is recognised
func (p *Profile) Set(key, value string) bool {
	f := p.field(key)
	if f == nil {
		return false
	}
	*f = value
	return true
}
