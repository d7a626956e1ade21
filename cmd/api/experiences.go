package main

import (
	"errors"
	"net/http"

	"bookit/internal/domain/experiences"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// listExperiencesHandler godoc
//
//	@Summary		List experiences
//	@Description	Returns the catalog with slots. The optional search filters by name, location or description, case-insensitively.
//	@Tags			Experiences
//	@Produce		json
//	@Param			search	query		string	false	"Search text"
//	@Success		200		{array}		experiences.Experience
//	@Failure		500		{object}	error
//	@Router			/experiences [get]
func (app *application) listExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Experiences.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	list = experiences.Search(list, r.URL.Query().Get("search"))
	if list == nil {
		list = []experiences.Experience{}
	}
	for i := range list {
		app.images.Resolve(&list[i])
	}

	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getExperienceHandler godoc
//
//	@Summary		Get an experience
//	@Description	Returns one experience with its slots in display order.
//	@Tags			Experiences
//	@Produce		json
//	@Param			experienceID	path		string	true	"Experience ID"
//	@Success		200				{object}	experiences.Experience
//	@Failure		404				{object}	error	"Experience not found"
//	@Failure		500				{object}	error
//	@Router			/experiences/{experienceID} [get]
func (app *application) getExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "experienceID")
	if _, err := uuid.Parse(id); err != nil {
		app.notFoundResponse(w, r, experiences.ErrNotFound)
		return
	}

	e, err := app.store.Experiences.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, experiences.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	app.images.Resolve(e)

	if err := app.jsonResponse(w, http.StatusOK, e); err != nil {
		app.internalServerError(w, r, err)
	}
}
