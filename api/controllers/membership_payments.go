package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ammabio/amma-backend/api/middleware"
	"github.com/ammabio/amma-backend/api/responses"
	"github.com/ammabio/amma-backend/api/validators"
	"github.com/ammabio/amma-backend/internal/payments"
	pkgerrors "github.com/ammabio/amma-backend/pkg/errors"
	"github.com/ammabio/amma-backend/pkg/logger"
)

// MembershipPaymentCreate records a payment with an optional receipt upload.
func MembershipPaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		if err := parseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membershipID, err := formUint(r, "membership_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Record(r.Context(), middleware.UserIDFromContext(r.Context()), payments.RecordPaymentRequest{
			MembershipID:         membershipID,
			Amount:               r.FormValue("amount"),
			Currency:             r.FormValue("currency"),
			PaymentMethod:        r.FormValue("payment_method"),
			TransactionReference: formValuePtr(r, "transaction_reference"),
			Remarks:              formValuePtr(r, "remarks"),
			Receipt:              formFile(r, "receipt"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, created)
	}
}

// MembershipPaymentDetail returns one payment owned by the caller.
func MembershipPaymentDetail(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Get(r.Context(), middleware.UserIDFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// MembershipPaymentUpdate amends a pending payment.
func MembershipPaymentUpdate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := parseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), middleware.UserIDFromContext(r.Context()), id, payments.UpdatePaymentRequest{
			TransactionReference: formValuePtr(r, "transaction_reference"),
			Remarks:              formValuePtr(r, "remarks"),
			Receipt:              formFile(r, "receipt"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// MembershipPaymentsByMembership lists a membership's payments.
func MembershipPaymentsByMembership(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		membershipID, err := validators.ParsePathID(chi.URLParam(r, "membershipId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByMembership(r.Context(), middleware.UserIDFromContext(r.Context()), membershipID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, rows, len(rows))
	}
}
