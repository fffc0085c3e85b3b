package controllers

import (
	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

// viewerFrom builds the visibility identity from the values the auth
// middleware stored on the request context.
func viewerFrom(c *gin.Context) services.Viewer {
	role, _ := c.Get("role")
	r, ok := role.(models.Role)
	if !ok {
		r = models.RoleEmployee
	}
	return services.Viewer{UserID: c.GetUint("userID"), Role: r}
}

func userNameFrom(c *gin.Context) string {
	return c.GetString("userName")
}
