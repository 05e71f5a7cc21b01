package codec

import (
	"fmt"
	"strings"

	"github.com/yigit/isluportal/internal/app/models"
)

const accountFields = 6

// DecodeAccount parses id,last,first,middle,dob,password[|profile]
func DecodeAccount(line string) (models.Account, error) {
	head, blob, hasProfile := strings.Cut(line, profileSep)

	parts, err := splitFields(KindAccount, head, accountFields)
	if err != nil {
		return models.Account{}, err
	}
	if parts[0] == "" {
		return models.Account{}, malformed(KindAccount, "empty student ID")
	}

	return models.Account{
		ID:          parts[0],
		LastName:    parts[1],
		FirstName:   parts[2],
		MiddleName:  parts[3],
		DateOfBirth: parts[4],
		Password:    parts[5],
		ProfileBlob: strings.TrimSpace(blob),
		HasProfile:  hasProfile,
	}, nil
}

// EncodeAccount renders an account line, keeping the profile blob verbatim
func EncodeAccount(a models.Account) string {
	line := strings.Join([]string{
		a.ID, a.LastName, a.FirstName, a.MiddleName, a.DateOfBirth, a.Password,
	}, fieldSep)
	if a.HasProfile || a.ProfileBlob != "" {
		line += profileSep + a.ProfileBlob
	}
	return line
}

// ParseProfile reads a key=value;key=value blob. Unknown keys and pairs
// without '=' are ignored; missing keys take their defaults.
func ParseProfile(blob string) models.Profile {
	p := models.DefaultProfile()
	for _, pair := range strings.Split(blob, ";") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		p.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return p
}

// EncodeProfile writes every profile key in a fixed order. Delimiters that
// would break the account line are replaced with spaces.
func EncodeProfile(p models.Profile) string {
	var b strings.Builder
	for _, key := range models.ProfileKeys {
		fmt.Fprintf(&b, "%s=%s;", key, sanitizeProfileValue(p.Get(key)))
	}
	return b.String()
}

var profileValueReplacer = strings.NewReplacer(";", " ", "=", " ", "|", " ", "\n", " ", "\r", " ")

func sanitizeProfileValue(v string) string {
	return strings.TrimSpace(profileValueReplacer.Replace(v))
}

// DecodeCredential parses "ID: <id> | Password: <password>"
func DecodeCredential(line string) (models.Credential, error) {
	left, right, ok := strings.Cut(line, profileSep)
	if !ok {
		return models.Credential{}, malformed(KindCredential, "missing '|' separator")
	}
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)

	id, ok := strings.CutPrefix(left, "ID:")
	if !ok {
		return models.Credential{}, malformed(KindCredential, "missing ID label")
	}
	password, ok := strings.CutPrefix(right, "Password:")
	if !ok {
		return models.Credential{}, malformed(KindCredential, "missing Password label")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return models.Credential{}, malformed(KindCredential, "empty student ID")
	}
	return models.Credential{StudentID: id, Password: strings.TrimSpace(password)}, nil
}

// EncodeCredential renders a credential mirror line
func EncodeCredential(c models.Credential) string {
	return "ID: " + c.StudentID + " | Password: " + c.Password
}
