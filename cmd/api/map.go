package main

import (
	"errors"
	"net/http"
	"strconv"

	"photomap/internal/mapview"
	_ "photomap/internal/session" // imported for swagger type definitions
	"photomap/internal/types"

	"github.com/gin-gonic/gin"
)

// BridgeCallbackInput carries the arguments of a page callback
type BridgeCallbackInput struct {
	Args []string `json:"args"`
}

// CommandsResponse lists JavaScript commands for the page to run
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// CoordsInput sets the coordinates field
type CoordsInput struct {
	Coords string `json:"coords" example:"51.5, -0.12"`
}

// SearchTextInput sets the search edit box
type SearchTextInput struct {
	Text string `json:"text" example:"Aspen"`
}

// MarkerInput places a marker and lists the images located at it
type MarkerInput struct {
	Lat    float64  `json:"lat" binding:"gte=-90,lte=90" example:"51.5"`
	Lng    float64  `json:"lng" binding:"gte=-180,lte=180" example:"-0.12"`
	Images []string `json:"images" binding:"required"`
}

// SelectionInput replaces the image selection
type SelectionInput struct {
	Images []string `json:"images"`
}

// DropInput describes images dropped onto the map at a page position
type DropInput struct {
	X      int      `json:"x" example:"120"`
	Y      int      `json:"y" example:"80"`
	Images []string `json:"images" binding:"required"`
}

// handleGetPage godoc
// @Summary Get the map page
// @Description Render the HTML page hosting the backend's map control
// @Tags map
// @Produce html
// @Success 200 {string} string
// @Failure 500 {object} map[string]string
// @Router /map [get]
func (app *App) handleGetPage(c *gin.Context) {
	var (
		page string
		err  error
	)
	initData := mapview.InitData{
		Lat:  app.cfg.Map.Lat,
		Lng:  app.cfg.Map.Lng,
		Zoom: app.cfg.Map.Zoom,
	}
	app.session.Do(func() {
		page, err = mapview.ComposePage(app.backend, "/static/"+app.backend.Name()+"/", initData)
	})
	if err != nil {
		app.logger.Error("failed to compose map page", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose map page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// handleGetTerms godoc
// @Summary Get attribution elements
// @Description List the copyright labels and terms-of-use links shown under the map
// @Tags map
// @Produce json
// @Success 200 {array} mapview.TermsItem
// @Router /map/terms [get]
func (app *App) handleGetTerms(c *gin.Context) {
	var terms []mapview.TermsItem
	app.session.Do(func() {
		terms = app.backend.Terms()
	})
	c.JSON(http.StatusOK, terms)
}

// handleOpenTerms godoc
// @Summary Open a terms-of-use link
// @Description Open the link of an attribution element in the system browser
// @Tags map
// @Param index path int true "Index into the terms list"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/terms/{index}/open [post]
func (app *App) handleOpenTerms(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	app.session.Do(func() {
		err = app.backend.OpenTerms(index)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleGetState godoc
// @Summary Get the map panel state
// @Description Coordinates, location fields, search results and selection
// @Tags map
// @Produce json
// @Success 200 {object} session.State
// @Router /map/state [get]
func (app *App) handleGetState(c *gin.Context) {
	c.JSON(http.StatusOK, app.session.State())
}

// handlePutCoords godoc
// @Summary Set the coordinates field
// @Description Typing coordinates moves the selected images; with nothing selected only the field changes
// @Tags map
// @Accept json
// @Param input body CoordsInput true "Coordinates as \"lat, lon\""
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/coords [put]
func (app *App) handlePutCoords(c *gin.Context) {
	var input CoordsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.session.Do(func() {
		app.session.SetCoords(input.Coords)
		app.backend.Base().NewCoords()
	})
	c.Status(http.StatusNoContent)
}

// handlePutSearchText godoc
// @Summary Set the search box text
// @Tags map
// @Accept json
// @Param input body SearchTextInput true "Search text"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/search-text [put]
func (app *App) handlePutSearchText(c *gin.Context) {
	var input SearchTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.session.Do(func() {
		app.session.SetSearchText(input.Text)
	})
	c.Status(http.StatusNoContent)
}

// handlePutMarker godoc
// @Summary Place a marker
// @Description Put a marker on the map and associate it with the images located at it
// @Tags map
// @Accept json
// @Param id path string true "Marker id"
// @Param input body MarkerInput true "Marker position and images"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/markers/{id} [put]
func (app *App) handlePutMarker(c *gin.Context) {
	var input MarkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.session.Do(func() {
		app.backend.Base().SetMarker(c.Param("id"), types.NewCoords(input.Lat, input.Lng), input.Images)
	})
	c.Status(http.StatusNoContent)
}

// handleDeleteMarker godoc
// @Summary Remove a marker
// @Tags map
// @Param id path string true "Marker id"
// @Success 204
// @Router /map/markers/{id} [delete]
func (app *App) handleDeleteMarker(c *gin.Context) {
	app.session.Do(func() {
		app.backend.Base().RemoveMarker(c.Param("id"))
	})
	c.Status(http.StatusNoContent)
}

// handlePutSelection godoc
// @Summary Select images
// @Description Replace the image selection and highlight its markers
// @Tags map
// @Accept json
// @Param input body SelectionInput true "Selected images"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/selection [put]
func (app *App) handlePutSelection(c *gin.Context) {
	var input SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.session.Do(func() {
		app.session.SelectImages(input.Images)
		app.backend.Base().NewSelection()
	})
	c.Status(http.StatusNoContent)
}

// handlePostDrop godoc
// @Summary Drop images onto the map
// @Description Asks the page to convert the drop position and report it back through marker_drop
// @Tags map
// @Accept json
// @Param input body DropInput true "Drop position and images"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /map/drop [post]
func (app *App) handlePostDrop(c *gin.Context) {
	var input DropInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.session.Do(func() {
		app.backend.Base().DropImages(input.X, input.Y, input.Images)
	})
	c.Status(http.StatusNoContent)
}

// handleBridgeCallback godoc
// @Summary Invoke a bridge callback
// @Description Called by the map page, e.g. new_status, marker_click, marker_drop, goto_search_result, get_address
// @Tags bridge
// @Accept json
// @Param callback path string true "Callback name"
// @Param input body BridgeCallbackInput false "Callback arguments"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bridge/{callback} [post]
func (app *App) handleBridgeCallback(c *gin.Context) {
	var input BridgeCallbackInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	name := c.Param("callback")
	var err error
	app.session.Do(func() {
		err = app.bridge.Dispatch(c.Request.Context(), name, input.Args)
	})
	if err != nil {
		switch {
		case errors.Is(err, mapview.ErrUnknownCallback):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, mapview.ErrBadArguments):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			app.logger.Error("bridge callback failed", "callback", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bridge callback failed"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// handleGetCommands godoc
// @Summary Collect pending JavaScript commands
// @Description Returns and clears the commands queued for the map page
// @Tags bridge
// @Produce json
// @Success 200 {object} CommandsResponse
// @Router /bridge/commands [get]
func (app *App) handleGetCommands(c *gin.Context) {
	cmds := app.session.TakeCommands()
	if cmds == nil {
		cmds = []string{}
	}
	c.JSON(http.StatusOK, CommandsResponse{Commands: cmds})
}
