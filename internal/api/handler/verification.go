package handler

import (
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/api/request"
	"github.com/certverify/verification/internal/api/response"
	"github.com/certverify/verification/internal/core"
	"github.com/certverify/verification/internal/model"
)

type Verification struct {
	svc  *core.VerificationService
	logs *core.VerificationLogService
}

func NewVerification(svc *core.VerificationService, logs *core.VerificationLogService) *Verification {
	return &Verification{svc: svc, logs: logs}
}

// Verify handles POST /api/verify.
func (h *Verification) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.Verify
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, byID, err := req.Key()
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := core.WithVerifierIP(r.Context(), clientIP(r))

	var out model.Outcome
	if byID {
		out = h.svc.VerifyByID(ctx, key)
	} else {
		out = h.svc.VerifyByCode(ctx, key)
	}

	response.WriteData(w, http.StatusOK, out, outcomeMessage(out))
}

// VerifyByID handles GET /api/verify/{certificateId}.
func (h *Verification) VerifyByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "certificateId")
	if !request.ValidCertificateID(id) {
		response.WriteError(w, http.StatusBadRequest, "Invalid certificate ID format")
		return
	}

	out := h.svc.VerifyByID(core.WithVerifierIP(r.Context(), clientIP(r)), id)
	response.WriteData(w, http.StatusOK, out, outcomeMessage(out))
}

// VerifyByCode handles GET /api/verify/code/{verificationCode}.
func (h *Verification) VerifyByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "verificationCode")
	if !request.ValidVerificationCode(code) {
		response.WriteError(w, http.StatusBadRequest, "Verification code must be 6-8 alphanumeric characters")
		return
	}

	out := h.svc.VerifyByCode(core.WithVerifierIP(r.Context(), clientIP(r)), code)
	response.WriteData(w, http.StatusOK, out, outcomeMessage(out))
}

// VerifyBulk handles POST /api/verify/bulk.
func (h *Verification) VerifyBulk(w http.ResponseWriter, r *http.Request) {
	var req request.BulkVerify
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	reqs := make([]model.BulkRequest, len(req.Certificates))
	for i, c := range req.Certificates {
		reqs[i] = model.BulkRequest{
			CertificateID:    c.CertificateID,
			VerificationCode: c.VerificationCode,
		}
	}

	out := h.svc.VerifyBulk(core.WithVerifierIP(r.Context(), clientIP(r)), reqs)

	msg := fmt.Sprintf("Bulk verification completed. %d/%d certificates are valid.",
		out.ValidCertificates, out.TotalRequested)
	response.WriteData(w, http.StatusOK, out, msg)
}

// History handles GET /api/verify/{certificateId}/history.
func (h *Verification) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "certificateId")
	if !request.ValidCertificateID(id) {
		response.WriteError(w, http.StatusBadRequest, "Invalid certificate ID format")
		return
	}

	logs, err := h.logs.RecentByCertificate(r.Context(), id, 10)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("certificate_id", id).Msg("failed to load verification history")
		response.WriteError(w, http.StatusInternalServerError, "Failed to load verification history")
		return
	}
	if logs == nil {
		logs = []model.VerificationLog{}
	}

	response.WriteData(w, http.StatusOK, logs, "Verification history")
}

func outcomeMessage(out model.Outcome) string {
	if out.Valid {
		return "Certificate verified successfully"
	}
	return "Certificate verification failed"
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
