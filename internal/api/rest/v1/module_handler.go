package v1

import (
	"fmt"
	"net/http"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
)

// ModuleHandler defines the interface for module status operations
type ModuleHandler interface {
	GetModule(ctx *gin.Context)
	ListAlgorithms(ctx *gin.Context)
}

type moduleHandler struct {
	moduleService fips.ModuleService
}

// NewModuleHandler creates a new ModuleHandler
func NewModuleHandler(moduleService fips.ModuleService) ModuleHandler {
	return &moduleHandler{
		moduleService: moduleService,
	}
}

// GetModule handles the GET request for the module status
// @Summary Retrieve module status
// @Description Fetch the module build metadata, operating mode and integrity fingerprints.
// @Tags Module
// @Produce json
// @Success 200 {object} ModuleResponse
// @Failure 500 {object} ErrorResponse
// @Router /module [get]
func (handler *moduleHandler) GetModule(ctx *gin.Context) {
	status, err := handler.moduleService.Status(ctx)
	if err != nil {
		abortWithError(ctx, statusFor(err), fmt.Sprintf("failed to read module status: %v", err))
		return
	}

	ctx.JSON(http.StatusOK, newModuleResponse(status))
}

// ListAlgorithms handles the GET request for the registered algorithms
// @Summary List registered algorithms
// @Tags Module
// @Produce json
// @Success 200 {array} AlgorithmResponse
// @Router /algorithms [get]
func (handler *moduleHandler) ListAlgorithms(ctx *gin.Context) {
	var listResponse = []AlgorithmResponse{}
	for _, algorithm := range handler.moduleService.Algorithms(ctx) {
		listResponse = append(listResponse, AlgorithmResponse{
			Type:    algorithm.Type,
			Name:    algorithm.Name,
			Aliases: algorithm.Aliases,
		})
	}

	ctx.JSON(http.StatusOK, listResponse)
}
