package controller

import (
	"strconv"

	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoundController struct {
	roundService *service.RoundService
	statsService *service.StatsService
}

func NewRoundController(db *gorm.DB) *RoundController {
	return &RoundController{
		roundService: service.NewRoundService(db),
		statsService: service.NewStatsService(db),
	}
}

func setupRoundController(db *gorm.DB) []RouteInfo {
	e := NewRoundController(db)
	baseUrl := "/rounds"
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.submitScoreHandler(), Authenticated: true},
		{Method: "GET", Path: "", HandlerFunc: e.getOwnRoundsHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/:round_id", HandlerFunc: e.deleteRoundHandler(), Authenticated: true},
		{Method: "GET", Path: "/stats", HandlerFunc: e.getOwnStatsHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type ScoreSubmission struct {
	Text string `json:"text" binding:"required"`
}

func (e *RoundController) submitScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var submission ScoreSubmission
		if err := c.BindJSON(&submission); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		round, err := e.roundService.SubmitScore(currentUserId(c), submission.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(201, round)
	}
}

func (e *RoundController) getOwnRoundsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rounds, err := e.roundService.GetRoundsForUser(currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, rounds)
	}
}

func (e *RoundController) deleteRoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId, err := strconv.Atoi(c.Param("round_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.roundService.DeleteRound(roundId, currentUserId(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *RoundController) getOwnStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := e.statsService.GetStatsForUser(currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, stats)
	}
}
