package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

// iceConfigHandler advertises the ICE servers clients should build
// their peer connections with. The relay itself never terminates media.
func iceConfigHandler(stunURLs []string) gin.HandlerFunc {
	servers := []webrtc.ICEServer{{URLs: stunURLs}}
	return func(c *gin.Context) {
		respondOK(c, http.StatusOK, gin.H{"iceServers": servers})
	}
}
