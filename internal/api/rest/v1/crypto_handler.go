package v1

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
)

// CryptoHandler defines the interface for digest and random operations
type CryptoHandler interface {
	Digest(ctx *gin.Context)
	Random(ctx *gin.Context)
}

type cryptoHandler struct {
	digestService fips.DigestService
	randomService fips.RandomService
}

// NewCryptoHandler creates a new CryptoHandler
func NewCryptoHandler(digestService fips.DigestService, randomService fips.RandomService) CryptoHandler {
	return &cryptoHandler{
		digestService: digestService,
		randomService: randomService,
	}
}

// Digest handles the POST request to hash data
// @Summary Compute a message digest
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body DigestRequest true "Digest algorithm and base64 data"
// @Success 200 {object} DigestResponse
// @Failure 400 {object} ErrorResponse
// @Router /digest [post]
func (handler *cryptoHandler) Digest(ctx *gin.Context) {
	var request DigestRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid digest request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := handler.digestService.Digest(ctx, request.Algorithm, request.Data)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("digest failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, DigestResponse{
		Algorithm: request.Algorithm,
		Digest:    hex.EncodeToString(digest),
	})
}

// Random handles the POST request for DRBG output
// @Summary Generate random bytes
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body RandomRequest true "Number of bytes"
// @Success 200 {object} RandomResponse
// @Failure 400 {object} ErrorResponse
// @Router /random [post]
func (handler *cryptoHandler) Random(ctx *gin.Context) {
	var request RandomRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid random request: %v", err))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	out, err := handler.randomService.Generate(ctx, request.Length)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("random generation failed: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, RandomResponse{Bytes: out})
}
