package controller

import (
	"learnlocal_backend/internal/service"
	"learnlocal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// @Summary Issue a certificate for a module
// @Description Fails unless enough lessons are completed; one per user/module
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 201 {object} util.Response
// @Router /api/modules/{id}/certificate [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, ok := parseID(ctx)
	if !ok {
		return
	}

	cert, err := c.CertificateService.Issue(user.UserID, moduleID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Created(ctx, cert)
}

// @Summary Certificates of the current user
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertificateService.ListForUser(user.UserID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// @Summary Verify a certificate code
// @Tags certificates
// @Produce json
// @Param code path string true "certificate code"
// @Success 200 {object} util.Response
// @Router /api/certificates/verify/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		util.BadRequest(ctx, "missing code")
		return
	}

	cert, err := c.CertificateService.Verify(code)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}

	util.Success(ctx, cert)
}
