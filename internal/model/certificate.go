package model

// Certificate is the issued credential record as returned by the certificate
// service. This service never mutates it; status transitions belong to the
// issuance side.
type Certificate struct {
	ID                string  `json:"id"`
	CertificateNumber string  `json:"certificateNumber"`
	StudentID         string  `json:"studentId"`
	AuthorityID       string  `json:"universityId"`
	StudentName       string  `json:"studentName"`
	CourseName        string  `json:"courseName"`
	Specialization    string  `json:"specialization,omitempty"`
	Grade             string  `json:"grade"`
	CGPA              float64 `json:"cgpa,omitempty"`
	IssueDate         string  `json:"issueDate"`
	CompletionDate    string  `json:"completionDate,omitempty"`
	ContentHash       string  `json:"certificateHash"`
	Signature         string  `json:"digitalSignature"`
	VerificationCode  string  `json:"verificationCode"`
	Status            string  `json:"status"`
	RevocationReason  string  `json:"revocationReason,omitempty"`
}

const (
	CertStatusActive    = "active"
	CertStatusRevoked   = "revoked"
	CertStatusSuspended = "suspended"
)
