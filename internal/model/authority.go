package model

// Authority is the issuing organization on record with the university
// registry. PublicKeyPEM is the single key trusted for this authority.
type Authority struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	PublicKeyPEM string `json:"publicKey"`
	Registered   bool   `json:"verified"`
}
