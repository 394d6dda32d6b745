package main

// @title Photomap API
// @version 1.0
// @description Map page and JavaScript bridge for the photo metadata editor's map panel.
// @host localhost:8080
// @BasePath /
