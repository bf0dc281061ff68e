package v1

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/fips-provider/internal/app"
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
)

// VerificationHandler defines the interface for signature verification operations
type VerificationHandler interface {
	VerifyRSA(ctx *gin.Context)
	VerifyECDSA(ctx *gin.Context)
	ListVerifications(ctx *gin.Context)
	GetVerificationByID(ctx *gin.Context)
}

type verificationHandler struct {
	verificationService fips.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService fips.VerificationService) VerificationHandler {
	return &verificationHandler{
		verificationService: verificationService,
	}
}

// VerifyRSA handles the POST request to verify an RSA signature
// @Summary Verify an RSA signature
// @Description Verify a PKCS#1 v1.5 or PSS signature and store the outcome. An invalid signature is a 200 with valid=false.
// @Tags Verification
// @Accept json
// @Produce json
// @Param requestBody body VerifyRequest true "Algorithm, PEM public key, base64 message and signature"
// @Success 200 {object} VerificationResponse
// @Failure 400 {object} ErrorResponse
// @Router /verify/rsa [post]
func (handler *verificationHandler) VerifyRSA(ctx *gin.Context) {
	handler.verify(ctx, fips.FamilyRSA)
}

// VerifyECDSA handles the POST request to verify an ECDSA signature
// @Summary Verify an ECDSA signature
// @Description Verify a DER encoded ECDSA signature and store the outcome. An invalid signature is a 200 with valid=false.
// @Tags Verification
// @Accept json
// @Produce json
// @Param requestBody body VerifyRequest true "Algorithm, PEM public key, base64 message and signature"
// @Success 200 {object} VerificationResponse
// @Failure 400 {object} ErrorResponse
// @Router /verify/ecdsa [post]
func (handler *verificationHandler) VerifyECDSA(ctx *gin.Context) {
	handler.verify(ctx, fips.FamilyEC)
}

func (handler *verificationHandler) verify(ctx *gin.Context, family string) {
	var request VerifyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid verification request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	publicKey, err := app.ParsePublicKeyPEM([]byte(request.PublicKey))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	switch publicKey.(type) {
	case *rsa.PublicKey:
		if family != fips.FamilyRSA {
			abortWithError(ctx, http.StatusBadRequest, "an EC public key is required")
			return
		}
	case *ecdsa.PublicKey:
		if family != fips.FamilyEC {
			abortWithError(ctx, http.StatusBadRequest, "an RSA public key is required")
			return
		}
	}

	record, err := handler.verificationService.Verify(ctx, request.Algorithm, publicKey, request.Message, request.Signature)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("verification failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, newVerificationResponse(record))
}

// ListVerifications handles the GET request to list verification records with optional query parameters
// @Summary List verification records
// @Tags Verification
// @Produce json
// @Param algorithm query string false "Signature algorithm"
// @Param family query string false "rsa or ecdsa"
// @Param outcome query int false "1, 0 or -1"
// @Param dateTimeCreated query string false "Creation date (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} VerificationResponse
// @Failure 400 {object} ErrorResponse
// @Router /verifications [get]
func (handler *verificationHandler) ListVerifications(ctx *gin.Context) {
	query := fips.NewVerificationQuery()

	if algorithm := ctx.Query("algorithm"); len(algorithm) > 0 {
		query.Algorithm = algorithm
	}

	if family := ctx.Query("family"); len(family) > 0 {
		query.Family = family
	}

	if outcome := ctx.Query("outcome"); len(outcome) > 0 {
		n, err := strconv.ParseInt(outcome, 10, 32)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid outcome %q", outcome))
			return
		}
		o := fips.Outcome(n)
		query.Outcome = &o
	}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid dateTimeCreated %q", dateTimeCreated))
			return
		}
		query.DateTimeCreated = parsedTime
	}

	for name, target := range map[string]*int{"limit": &query.Limit, "offset": &query.Offset} {
		if value := ctx.Query(name); len(value) > 0 {
			n, err := strconv.Atoi(value)
			if err != nil {
				abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, value))
				return
			}
			*target = n
		}
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	records, err := handler.verificationService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("list query failed: %v", err))
		return
	}

	var listResponse = []VerificationResponse{}
	for _, record := range records {
		listResponse = append(listResponse, newVerificationResponse(record))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetVerificationByID handles the GET request for a single verification record
// @Summary Retrieve a verification record by ID
// @Tags Verification
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} VerificationResponse
// @Failure 404 {object} ErrorResponse
// @Router /verifications/{id} [get]
func (handler *verificationHandler) GetVerificationByID(ctx *gin.Context) {
	id := ctx.Param("id")

	record, err := handler.verificationService.GetByID(ctx, id)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("verification with id %s not found", id))
		return
	}

	ctx.JSON(http.StatusOK, newVerificationResponse(record))
}
