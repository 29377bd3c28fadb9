package controller

import (
	"strconv"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/scoring"
	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TournamentController struct {
	tournamentService *service.TournamentService
	scoreService      *scoring.ScoreService
}

func NewTournamentController(db *gorm.DB) *TournamentController {
	return &TournamentController{
		tournamentService: service.NewTournamentService(db),
		scoreService:      scoring.NewScoreService(db),
	}
}

func setupTournamentController(db *gorm.DB) []RouteInfo {
	e := NewTournamentController(db)
	return []RouteInfo{
		{Method: "POST", Path: "/groups/:group_id/tournaments", HandlerFunc: e.createTournamentHandler(), Authenticated: true},
		{Method: "GET", Path: "/groups/:group_id/tournaments", HandlerFunc: e.getTournamentsHandler(), Authenticated: true},
		{Method: "GET", Path: "/tournaments/:tournament_id", HandlerFunc: e.getTournamentHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/tournaments/:tournament_id", HandlerFunc: e.deleteTournamentHandler(), Authenticated: true},
		{Method: "POST", Path: "/tournaments/:tournament_id/join", HandlerFunc: e.joinTournamentHandler(), Authenticated: true},
		{Method: "GET", Path: "/tournaments/:tournament_id/participants", HandlerFunc: e.getParticipantsHandler(), Authenticated: true},
		{Method: "POST", Path: "/tournaments/:tournament_id/participants/:user_id", HandlerFunc: e.addParticipantHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/tournaments/:tournament_id/participants/:user_id", HandlerFunc: e.removeParticipantHandler(), Authenticated: true},
		{Method: "PUT", Path: "/tournaments/:tournament_id/participants/:user_id/team", HandlerFunc: e.assignTeamHandler(), Authenticated: true},
		{Method: "GET", Path: "/tournaments/:tournament_id/standings", HandlerFunc: e.getStandingsHandler(), Authenticated: true},
		{Method: "GET", Path: "/tournaments/:tournament_id/scorecard", HandlerFunc: e.getScorecardHandler(), Authenticated: true},
	}
}

type TournamentResponse struct {
	*repository.Tournament
	Status repository.TournamentStatus `json:"status"`
}

func toTournamentResponse(tournament *repository.Tournament) *TournamentResponse {
	return &TournamentResponse{
		Tournament: tournament,
		Status:     tournament.Status(),
	}
}

func (e *TournamentController) createTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var create service.TournamentCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.CreateTournament(groupId, currentUserId(c), &create)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(201, toTournamentResponse(tournament))
	}
}

func (e *TournamentController) getTournamentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournaments, err := e.tournamentService.GetTournamentsForGroup(groupId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		responses := make([]*TournamentResponse, 0, len(tournaments))
		for _, tournament := range tournaments {
			responses = append(responses, toTournamentResponse(tournament))
		}
		c.JSON(200, responses)
	}
}

func (e *TournamentController) getTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.GetTournament(tournamentId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, toTournamentResponse(tournament))
	}
}

func (e *TournamentController) deleteTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.DeleteTournament(tournamentId, currentUserId(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *TournamentController) joinTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.JoinTournament(tournamentId, currentUserId(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(201, nil)
	}
}

func (e *TournamentController) getParticipantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		participants, err := e.tournamentService.GetParticipants(tournamentId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, participants)
	}
}

func (e *TournamentController) addParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.AddParticipant(tournamentId, currentUserId(c), userId); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(201, nil)
	}
}

func (e *TournamentController) removeParticipantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.RemoveParticipant(tournamentId, currentUserId(c), userId); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

type TeamAssignment struct {
	TeamId *int `json:"team_id" binding:"required"`
}

func (e *TournamentController) assignTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var assignment TeamAssignment
		if err := c.BindJSON(&assignment); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.AssignTeam(tournamentId, currentUserId(c), userId, *assignment.TeamId); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *TournamentController) getStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.GetTournament(tournamentId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		standings, err := e.scoreService.GetStandings(tournament.Id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{
			"tournament": toTournamentResponse(tournament),
			"standings":  standings,
		})
	}
}

func (e *TournamentController) getScorecardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.GetTournament(tournamentId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		scorecard, err := e.scoreService.GetScorecard(tournament.Id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, scorecard)
	}
}
