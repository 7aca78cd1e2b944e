package model

import "time"

// Verification methods reported in outcomes and recorded in the
// verification log.
const (
	MethodID   = "id"
	MethodCode = "code"
	MethodBulk = "bulk"
)

// Outcome is the verdict for a single verification attempt. Valid is true
// only when the certificate was found, is active, its issuing authority is
// registered and the signature check passed. Certificate and Authority are
// populated wherever the corresponding lookup succeeded, even for invalid
// outcomes, to aid diagnostics.
type Outcome struct {
	Valid       bool         `json:"valid"`
	Certificate *Certificate `json:"certificate,omitempty"`
	Authority   *Authority   `json:"university,omitempty"`
	Method      string       `json:"verificationMethod"`
	Timestamp   time.Time    `json:"timestamp"`
	Reason      string       `json:"reason,omitempty"`
}

// BulkRequest identifies one certificate in a bulk verification. Exactly one
// of the two fields is expected; when both are present the ID wins.
type BulkRequest struct {
	CertificateID    string `json:"certificateId,omitempty"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

// BulkItem is the per-certificate result inside a bulk outcome. It echoes
// both identifying fields exactly as the caller supplied them.
type BulkItem struct {
	CertificateID    string `json:"certificateId,omitempty"`
	VerificationCode string `json:"verificationCode,omitempty"`
	Valid            bool   `json:"valid"`
	Reason           string `json:"reason,omitempty"`
}

// BulkOutcome aggregates a bulk verification. Results preserve input order.
type BulkOutcome struct {
	TotalRequested      int        `json:"totalRequested"`
	ValidCertificates   int        `json:"validCertificates"`
	InvalidCertificates int        `json:"invalidCertificates"`
	Results             []BulkItem `json:"results"`
}

// VerificationLog is one recorded verification attempt.
type VerificationLog struct {
	ID             string    `json:"id"`
	CertificateKey string    `json:"certificateKey"`
	Method         string    `json:"verificationMethod"`
	VerifierIP     string    `json:"verifierIp,omitempty"`
	Result         string    `json:"result"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	ResponseTimeMS int64     `json:"responseTime,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Verification log results.
const (
	LogResultValid   = "valid"
	LogResultInvalid = "invalid"
	LogResultError   = "error"
)
