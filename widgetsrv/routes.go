package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/restmux/restmux"
	"github.com/restmux/restmux/reqparse"
)

func (s *server) setupRoutes() {
	ns := s.api.Namespace("widgets", "Widget storage and retrieval")

	listParser := reqparse.NewParser().
		AddArgument(&reqparse.Arg{
			Name: "q",
			Type: reqparse.TypeString,
			Help: "Only return widgets whose title contains this",
		}).
		AddArgument(&reqparse.Arg{
			Name:    "limit",
			Type:    reqparse.TypeInteger,
			Default: 20,
			Help:    "Page size",
		})

	ns.Route(restmux.NewResource("WidgetList"), "").
		Get(&restmux.Method{
			Handler: s.handleGetWidgets(),
			Doc: &restmux.Doc{
				Docstring: "List all widgets",
				Parser:    listParser,
				Model:     restmux.ListOf{Of: s.widgetModel},
			},
		}).
		Post(&restmux.Method{
			Handler: s.handleCreateWidget(),
			Doc: &restmux.Doc{
				Docstring:   "Create a widget",
				Body:        &restmux.Body{Model: s.widgetModel},
				Model:       s.widgetModel,
				DefaultCode: 201,
			},
		})

	ns.Route(restmux.NewResource("Widget"), "/<string:id>").
		Get(&restmux.Method{
			Handler: s.handleGetWidget(),
			Doc: &restmux.Doc{
				Docstring: "Fetch a single widget.\n\n:raises WidgetNotFound: when the id is unknown",
				Model:     s.widgetModel,
				Mask:      restmux.MaskAny,
			},
		}).
		Patch(&restmux.Method{
			Handler: s.handleUpdateWidget(),
			Doc: &restmux.Doc{
				Docstring: "Update a widget.\n\n:raises WidgetNotFound: when the id is unknown",
				Body:      &restmux.Body{Model: s.widgetModel},
				Model:     s.widgetModel,
			},
		}).
		Delete(&restmux.Method{
			Handler: s.handleDeleteWidget(),
			Doc: &restmux.Doc{
				Docstring: "Delete a widget.\n\n:raises WidgetNotFound: when the id is unknown",
				Security:  "apikey",
			},
		})
}

func (s *server) handleCreateWidget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newWidget widget
		if err := json.NewDecoder(r.Body).Decode(&newWidget); err != nil {
			http.Error(w, "could not decode widget", http.StatusBadRequest)
			return
		}
		s.widgets = append(s.widgets, newWidget)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(newWidget)
	}
}

func (s *server) handleGetWidget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		widgetID := mux.Vars(r)["id"]
		for _, singleWidget := range s.widgets {
			if singleWidget.ID == widgetID {
				json.NewEncoder(w).Encode(singleWidget)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func (s *server) handleGetWidgets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(s.widgets)
	}
}

func (s *server) handleUpdateWidget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		widgetID := mux.Vars(r)["id"]
		var updatedWidget widget
		if err := json.NewDecoder(r.Body).Decode(&updatedWidget); err != nil {
			http.Error(w, "could not decode widget", http.StatusBadRequest)
			return
		}
		for i, singleWidget := range s.widgets {
			if singleWidget.ID == widgetID {
				singleWidget.Title = updatedWidget.Title
				singleWidget.Description = updatedWidget.Description
				s.widgets[i] = singleWidget
				json.NewEncoder(w).Encode(singleWidget)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func (s *server) handleDeleteWidget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		widgetID := mux.Vars(r)["id"]
		for i, singleWidget := range s.widgets {
			if singleWidget.ID == widgetID {
				s.widgets = append(s.widgets[:i], s.widgets[i+1:]...)
				fmt.Fprintf(w, "The widget with ID %v has been deleted successfully", widgetID)
				return
			}
		}
		http.NotFound(w, r)
	}
}
