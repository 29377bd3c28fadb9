package controller

import (
	"strconv"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService      *service.UserService
	shareCardService *service.ShareCardService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService:      service.NewUserService(db),
		shareCardService: service.NewShareCardService(db),
	}
}

func setupUserController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewUserController(db)
	baseUrl := "/users"
	routes := []RouteInfo{
		{Method: "GET", Path: "/self", HandlerFunc: e.getSelfHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/self", HandlerFunc: e.updateSelfHandler(), Authenticated: true},
		{Method: "GET", Path: "/:user_id", HandlerFunc: e.getUserHandler()},
		{Method: "GET", Path: "/:user_id/share-card", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getShareCardHandler())},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

func (e *UserController) getSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserById(currentUserId(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, user)
	}
}

type UserUpdate struct {
	DisplayName string `json:"display_name" binding:"required"`
}

func (e *UserController) updateSelfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update UserUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.UpdateDisplayName(currentUserId(c), update.DisplayName)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, user)
	}
}

func (e *UserController) getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserById(userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, user)
	}
}

func (e *UserController) getShareCardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		png, err := e.shareCardService.RenderShareCard(userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(200, "image/png", png)
	}
}
