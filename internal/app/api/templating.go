package api

import (
	"embed"
	"html/template"
	"net/http"
)

var (
	//go:embed all:templates/*
	templateFS embed.FS

	html *template.Template
)

func init() {
	var err error
	html, err = template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}
}

type homePage struct {
	Providers []string
}

func (api *API) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := html.ExecuteTemplate(w, "index.html", &homePage{Providers: api.providers}); err != nil {
		api.logger.Error("failed to render home page", "err", err)
	}
}
