package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Map panel endpoints
	app.router.GET("/map", app.handleGetPage)
	app.router.GET("/map/terms", app.handleGetTerms)
	app.router.POST("/map/terms/:index/open", app.handleOpenTerms)
	app.router.GET("/map/state", app.handleGetState)
	app.router.PUT("/map/coords", app.handlePutCoords)
	app.router.PUT("/map/search-text", app.handlePutSearchText)
	app.router.PUT("/map/markers/:id", app.handlePutMarker)
	app.router.DELETE("/map/markers/:id", app.handleDeleteMarker)
	app.router.PUT("/map/selection", app.handlePutSelection)
	app.router.POST("/map/drop", app.handlePostDrop)

	// JavaScript bridge
	app.router.POST("/bridge/:callback", app.handleBridgeCallback)
	app.router.GET("/bridge/commands", app.handleGetCommands)

	// Page scripts
	app.router.Static("/static", app.cfg.App.ScriptDir)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
