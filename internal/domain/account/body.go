package account

import "strings"

// CredentialsFromBody reads login fields from a decoded JSON body. Missing or
// non-string values become empty strings. Identifiers are trimmed; passwords
// are passed through as sent.
func CredentialsFromBody(body map[string]any) Credentials {
	return Credentials{
		Email:    str(body, "email"),
		Username: str(body, "username"),
		Password: raw(body, "password"),
	}
}

// RegistrationFromBody reads registration fields from a decoded JSON body.
func RegistrationFromBody(body map[string]any) Registration {
	return Registration{
		Email:    str(body, "email"),
		Name:     str(body, "name"),
		Password: raw(body, "password"),
	}
}

// PasswordResetFromBody reads reset fields from a decoded JSON body.
func PasswordResetFromBody(body map[string]any) PasswordReset {
	return PasswordReset{
		Email:       str(body, "email"),
		Token:       str(body, "token"),
		NewPassword: raw(body, "new_password"),
	}
}

// EmailFromBody returns the trimmed "email" field.
func EmailFromBody(body map[string]any) string {
	return str(body, "email")
}

func str(body map[string]any, key string) string {
	return strings.TrimSpace(raw(body, key))
}

func raw(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}
