package middleware

import (
	"net/http"
	"net/netip"

	"github.com/gin-gonic/gin"

	"github.com/godwish/build-portal/internal/models"
)

const accessDeniedMessage = "Access denied. Internal network only."

// IsInternal classifies a caller address. Loopback is always internal;
// everything else must fall inside one of the trusted prefixes. IPv4-mapped
// IPv6 addresses are unmapped before matching.
func IsInternal(addr netip.Addr, trusted []netip.Prefix) bool {
	addr = addr.Unmap()
	if addr.IsLoopback() {
		return true
	}
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// InternalOnly gates mutating endpoints behind the network-origin check.
// This is a coarse perimeter filter, not authentication.
func InternalOnly(trusted []netip.Prefix) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, err := netip.ParseAddr(c.ClientIP())
		if err != nil || !IsInternal(addr, trusted) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": accessDeniedMessage,
			})
			return
		}
		c.Next()
	}
}

// BuildTypeValidator rejects unrecognized build types before any handler or
// storage access runs.
func BuildTypeValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := models.ParseBuildType(c.Param("type"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid build type",
			})
			return
		}
		c.Set("buildType", t)
		c.Next()
	}
}
