package api

import (
	"context"  // Context for the proof store
	"io"       // Reader for uploads
	"net/http" // HTTP status codes

	"chainvora/internal/apperr"    // Error classes
	"chainvora/internal/domain"    // Importing domain models
	"chainvora/internal/lifecycle" // Funding request state machine
	"chainvora/internal/metrics"   // Prometheus collectors

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// ProofStore keeps uploaded proof files and returns their reference
type ProofStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// SubmitRequest represents a center asking for money
type SubmitRequest struct {
	CenterName string          `json:"centerName"` // Requesting center
	Amount     decimal.Decimal `json:"amount"`     // Amount requested
	Reason     string          `json:"reason"`     // Why the money is needed
}

// StatusRequest moves a request through its lifecycle
type StatusRequest struct {
	Status     domain.RequestStatus `json:"status"`     // Target status
	ApprovedBy string               `json:"approvedBy"` // Approver, defaults to the session wallet
}

// RemarkRequest appends a reviewer note
type RemarkRequest struct {
	Remark string `json:"remark"` // Remark text
}

// SubmitRequestHandler records a new Pending request
func SubmitRequestHandler(lc *lifecycle.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		r, err := lc.Submit(c.Request.Context(), req.CenterName, req.Amount, req.Reason)
		metrics.RecordOperation(domain.KindRequest, req.Amount, err) // Count the attempt
		if err != nil {
			respondError(c, err, logrus.Fields{"center": req.CenterName, "amount": req.Amount.String()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"id":     r.ID,              // Request ID
			"center": r.CenterName,      // Requesting center
			"amount": r.Amount.String(), // Amount requested
		}).Info("Funding request submitted")
		c.JSON(http.StatusCreated, r)
	}
}

// ListRequestsHandler returns requests in submission order, optionally filtered by ?status=
func ListRequestsHandler(lc *lifecycle.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := domain.RequestStatus(c.Query("status")) // Optional filter
		if status != "" && !status.Valid() {
			respondError(c, apperr.ErrValidation.WithMessagef("unknown status %q", status), nil)
			return
		}
		requests, err := lc.List(c.Request.Context(), status)
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "requests", "status": status})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// GetRequestHandler returns one request with its remarks
func GetRequestHandler(lc *lifecycle.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		r, err := lc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logrus.Fields{"request_id": id})
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

// UpdateRequestStatusHandler approves, rejects or reviews a request
func UpdateRequestStatusHandler(lc *lifecycle.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req StatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		approvedBy := actor(c, req.ApprovedBy)
		r, err := lc.SetStatus(c.Request.Context(), id, req.Status, approvedBy)
		if err != nil {
			metrics.RecordOperation(string(req.Status), decimal.Zero, err)
			respondError(c, err, logrus.Fields{"request_id": id, "status": req.Status})
			return
		}
		metrics.RecordOperation(string(r.Status), r.Amount, nil)
		// Log the status change
		logrus.WithFields(logrus.Fields{
			"id":          r.ID,              // Request ID
			"center":      r.CenterName,      // Requesting center
			"amount":      r.Amount.String(), // Amount requested
			"status":      r.Status,          // New status
			"approved_by": r.ApprovedBy,      // Approver
		}).Info("Funding request status changed")
		c.JSON(http.StatusOK, r)
	}
}

// AddRemarkHandler appends a remark without changing the status
func AddRemarkHandler(lc *lifecycle.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req RemarkRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		r, err := lc.AddRemark(c.Request.Context(), id, req.Remark)
		if err != nil {
			respondError(c, err, logrus.Fields{"request_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Remark added successfully", "request": r})
	}
}

// UploadProofHandler stores the multipart "proof" file and attaches its reference
func UploadProofHandler(lc *lifecycle.Lifecycle, proofs ProofStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		fh, err := c.FormFile("proof") // Uploaded file header
		if err != nil {
			respondError(c, apperr.ErrValidation.WithMessage("No file uploaded"), nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c)
			return
		}
		defer f.Close()

		ctx := c.Request.Context()
		ref, err := proofs.Save(ctx, fh.Filename, f)
		if err != nil {
			respondError(c, apperr.Storage(err), logrus.Fields{"request_id": id, "file": fh.Filename})
			return
		}
		r, err := lc.AttachProof(ctx, id, ref)
		if err != nil {
			// Drop the orphaned file
			if derr := proofs.Delete(ctx, ref); derr != nil {
				logrus.WithField("ref", ref).WithError(derr).Warn("Could not remove rejected proof")
			}
			respondError(c, err, logrus.Fields{"request_id": id})
			return
		}
		logrus.WithFields(logrus.Fields{
			"id":     r.ID,         // Request ID
			"center": r.CenterName, // Requesting center
			"proof":  ref,          // Stored reference
			"size":   fh.Size,      // Upload size
		}).Info("Proof uploaded")
		c.JSON(http.StatusOK, gin.H{"message": "Proof uploaded successfully", "proofUrl": ref, "request": r})
	}
}
