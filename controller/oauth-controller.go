package controller

import (
	"net/http"

	"github.com/jlp0422/coffee-golf-leaderboard/auth"
	"github.com/jlp0422/coffee-golf-leaderboard/config"
	"github.com/jlp0422/coffee-golf-leaderboard/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OauthController struct {
	oauthService *service.OauthService
}

func NewOauthController(db *gorm.DB) *OauthController {
	return &OauthController{
		oauthService: service.NewOauthService(db),
	}
}

func setupOauthController(db *gorm.DB) []RouteInfo {
	e := NewOauthController(db)
	basePath := "/oauth2"
	routes := []RouteInfo{
		{Method: "GET", Path: "/discord", HandlerFunc: e.discordOauthHandler()},
		{Method: "GET", Path: "/discord/redirect", HandlerFunc: e.discordRedirectHandler()},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *OauthController) discordOauthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		redirect := c.Query("redirect")
		url := e.oauthService.GetLoginURL(redirect)
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

func (e *OauthController) discordRedirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		state := c.Query("state")
		user, redirect, err := e.oauthService.HandleCallback(c.Request.Context(), state, code)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		authToken, err := auth.CreateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("auth", authToken, 60*60*24*7, "/", "", config.IsProduction(), true)
		if redirect == "" {
			redirect = config.Env().FrontendURL
		}
		c.Redirect(http.StatusTemporaryRedirect, redirect)
	}
}

func (e *OauthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("auth", "", -1, "/", "", config.IsProduction(), true)
		c.JSON(204, nil)
	}
}
