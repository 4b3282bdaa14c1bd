package models

// Identity is the authenticated user as asserted by the external identity
// provider. Claims holds the token claims verbatim for /profile; the typed
// fields are the subset the API derives authorship from.
type Identity struct {
	Sub      string
	Name     string
	Nickname string
	Email    string
	Claims   map[string]interface{}
}

func IdentityFromClaims(claims map[string]interface{}) Identity {
	ident := Identity{Claims: claims}
	ident.Sub, _ = claims["sub"].(string)
	ident.Name, _ = claims["name"].(string)
	ident.Nickname, _ = claims["nickname"].(string)
	ident.Email, _ = claims["email"].(string)
	return ident
}

// DisplayName resolves the author display name: name, then nickname, then
// email, then "Anonymous".
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Nickname != "":
		return i.Nickname
	case i.Email != "":
		return i.Email
	}
	return "Anonymous"
}

// Subject returns the stable identity subject, or nil for tokens without one
// so the store records NULL rather than an empty string.
func (i Identity) Subject() *string {
	if i.Sub == "" {
		return nil
	}
	sub := i.Sub
	return &sub
}
