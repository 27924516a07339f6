package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dashboardStatsResponse struct {
	TotalProjects int64 `json:"totalProjects"`
	TotalUsers    int64 `json:"totalUsers"`
	MyTodo        int64 `json:"myTodo"`
	MyProgress    int64 `json:"myProgress"`
	MyDone        int64 `json:"myDone"`
}

func (h *handlerImpl) HandleDashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c, callerID(c))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to collect dashboard stats")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, dashboardStatsResponse{
		TotalProjects: stats.TotalProjects,
		TotalUsers:    stats.TotalUsers,
		MyTodo:        stats.MyTodo,
		MyProgress:    stats.MyInProgress,
		MyDone:        stats.MyDone,
	})
}
