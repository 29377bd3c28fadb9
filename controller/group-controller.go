package controller

import (
	"strconv"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupController struct {
	groupService *service.GroupService
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		groupService: service.NewGroupService(db),
	}
}

func setupGroupController(db *gorm.DB) []RouteInfo {
	e := NewGroupController(db)
	baseUrl := "/groups"
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.createGroupHandler(), Authenticated: true},
		{Method: "GET", Path: "", HandlerFunc: e.getOwnGroupsHandler(), Authenticated: true},
		{Method: "POST", Path: "/join", HandlerFunc: e.joinGroupHandler(), Authenticated: true},
		{Method: "GET", Path: "/:group_id", HandlerFunc: e.getGroupHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/:group_id", HandlerFunc: e.deleteGroupHandler(), Authenticated: true},
		{Method: "POST", Path: "/:group_id/leave", HandlerFunc: e.leaveGroupHandler(), Authenticated: true},
		{Method: "GET", Path: "/:group_id/leaderboard", HandlerFunc: e.getLeaderboardHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/:group_id/members/:user_id", HandlerFunc: e.removeMemberHandler(), Authenticated: true},
		{Method: "PUT", Path: "/:group_id/members/:user_id/role", HandlerFunc: e.setMemberRoleHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type GroupCreate struct {
	Name string `json:"name" binding:"required"`
}

func (e *GroupController) createGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create GroupCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.groupService.CreateGroup(currentUserId(c), create.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(201, group)
	}
}

func (e *GroupController) getOwnGroupsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groups, err := e.groupService.GetGroupsForUser(currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, groups)
	}
}

type GroupJoin struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

func (e *GroupController) joinGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var join GroupJoin
		if err := c.BindJSON(&join); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.groupService.JoinGroup(currentUserId(c), join.InviteCode)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, group)
	}
}

func (e *GroupController) getGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.groupService.GetGroup(groupId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, group)
	}
}

func (e *GroupController) deleteGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.groupService.DeleteGroup(groupId, currentUserId(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *GroupController) leaveGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.groupService.LeaveGroup(groupId, currentUserId(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *GroupController) getLeaderboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		entries, err := e.groupService.GetLeaderboard(groupId, currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, entries)
	}
}

func (e *GroupController) removeMemberHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.groupService.RemoveMember(groupId, currentUserId(c), userId); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

type MemberRoleUpdate struct {
	Role repository.GroupRole `json:"role" binding:"required,oneof=admin member"`
}

func (e *GroupController) setMemberRoleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId, err := strconv.Atoi(c.Param("group_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var update MemberRoleUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.groupService.SetMemberRole(groupId, currentUserId(c), userId, update.Role); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
