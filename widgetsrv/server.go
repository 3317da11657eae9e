package main

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/restmux/restmux"
	"github.com/restmux/restmux/fields"
)

type server struct {
	api     *restmux.Api
	router  *mux.Router
	widgets []widget

	widgetModel *fields.Model
}

type widget struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func newServer() (*server, error) {
	s := &server{
		router:  mux.NewRouter().StrictSlash(true),
		widgets: make([]widget, 0),
	}

	s.api = restmux.NewApi("Widget API", "1.0")
	s.api.Description = "A little widget store, documented from its registrations"
	s.api.BasePath = "/api"
	s.api.Config = restmux.ConfigFromEnv()
	s.api.Authorizations = map[string]map[string]any{
		"apikey": {"type": "apiKey", "in": "header", "name": "X-Api-Key"},
	}

	if err := s.setupModels(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	s.router.Use(restmux.LogMiddleware)
	s.router.Handle("/metrics", promhttp.Handler())
	s.api.Register(s.router)
	return s, nil
}

func (s *server) setupModels() error {
	// infer the wire shape from a sample instead of spelling it out
	m, err := fields.FromSample("Widget", []byte(`{
		"id": "1",
		"title": "Jeremy Bearimy",
		"description": "Some convoluted cyclical timeline situation"
	}`))
	if err != nil {
		return err
	}
	s.widgetModel = m
	s.api.AddModel(m.Name, m)

	s.api.AddErrorHandler("WidgetNotFound", &restmux.ErrorHandler{
		Docstring: "No widget matches the requested id",
		Responses: map[string]restmux.Response{
			"404": {Description: "Widget not found"},
		},
	})
	return nil
}

func (s *server) populateTestWidgets() {
	s.widgets = []widget{
		{
			ID:          "1",
			Title:       "Jeremy Bearimy",
			Description: "Some convoluted cyclical timeline situation",
		},
		{
			ID:          "2",
			Title:       "Gizmo",
			Description: "This is more of a gizmo than a widget, but we'll abuse the widget system to store it here.",
		},
	}
}
