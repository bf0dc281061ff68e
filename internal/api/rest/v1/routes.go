package v1

import (
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes sets up all the API routes for version 1.
// /metrics is only registered when gatherer is not nil.
func SetupRoutes(r *gin.Engine,
	moduleService fips.ModuleService,
	digestService fips.DigestService,
	randomService fips.RandomService,
	verificationService fips.VerificationService,
	gatherer prometheus.Gatherer) {

	v1 := r.Group(BasePath) // lookup in version file

	// Module Routes
	moduleHandler := NewModuleHandler(moduleService)
	v1.GET("/module", moduleHandler.GetModule)
	v1.GET("/algorithms", moduleHandler.ListAlgorithms)

	// Crypto Routes
	cryptoHandler := NewCryptoHandler(digestService, randomService)
	v1.POST("/digest", cryptoHandler.Digest)
	v1.POST("/random", cryptoHandler.Random)

	// Verification Routes
	verificationHandler := NewVerificationHandler(verificationService)
	v1.POST("/verify/rsa", verificationHandler.VerifyRSA)
	v1.POST("/verify/ecdsa", verificationHandler.VerifyECDSA)
	v1.GET("/verifications", verificationHandler.ListVerifications)
	v1.GET("/verifications/:id", verificationHandler.GetVerificationByID)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
