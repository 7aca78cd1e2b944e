package request

import "errors"

// ErrMissingKey is returned when a verification request carries neither a
// certificate ID nor a verification code.
var ErrMissingKey = errors.New("Either certificateId or verificationCode must be provided")

// Verify identifies one certificate to verify. When both fields are present
// the certificate ID takes precedence.
type Verify struct {
	CertificateID    string `json:"certificateId" validate:"omitempty,certid"`
	VerificationCode string `json:"verificationCode" validate:"omitempty,vercode"`
}

// Key returns the lookup key to use and whether it is a certificate ID.
func (v Verify) Key() (key string, byID bool, err error) {
	switch {
	case v.CertificateID != "":
		return v.CertificateID, true, nil
	case v.VerificationCode != "":
		return v.VerificationCode, false, nil
	default:
		return "", false, ErrMissingKey
	}
}

// BulkVerify carries up to 100 verification requests.
type BulkVerify struct {
	Certificates []Verify `json:"certificates" validate:"required,min=1,max=100,dive"`
}
