package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/ronmurphy/iconstudio/model"
)

// maxPNGSize caps the edge length of a rasterised export.
const maxPNGSize = 2048

type statusResponse struct {
	State   catalog.State  `json:"state"`
	Message string         `json:"message,omitempty"`
	Counts  map[string]int `json:"counts,omitempty"`
}

func (s *Server) status(c echo.Context) error {
	loader := s.studio.Catalog()
	resp := statusResponse{State: loader.State(), Message: loader.Status()}
	if cat, err := loader.Catalog(); err == nil && cat != nil {
		resp.Counts = map[string]int{}
		for _, lib := range model.Libraries() {
			for _, fam := range cat.Families(lib) {
				resp.Counts[string(lib)+"/"+string(fam)] = cat.Count(lib, fam)
			}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) catalogIcons(c echo.Context) error {
	lib, err := model.ParseLibrary(c.Param("library"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	fam := model.Family(c.Param("family"))
	if !lib.HasFamily(fam) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%s has no %s family", lib, fam))
	}
	cat, err := s.studio.Catalog().Catalog()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"library": lib,
		"family":  fam,
		"icons":   cat.Icons(lib, fam),
	})
}

type sessionResponse struct {
	core.State
	Selected   bool `json:"selected"`
	AutoUpdate bool `json:"autoUpdate"`
	AutoSave   bool `json:"autoSave"`
}

func sessionView(c echo.Context, e *sessionEntry) sessionResponse {
	_, selected := e.session.Current()
	return sessionResponse{
		State:      e.session.State(),
		Selected:   selected,
		AutoUpdate: e.session.Working().AutoUpdate(),
		AutoSave:   e.session.AutoSave(c.Request().Context()),
	}
}

func (s *Server) getSession(c echo.Context, e *sessionEntry) error {
	return c.JSON(http.StatusOK, sessionView(c, e))
}

type patchRequest struct {
	core.Patch
	AutoUpdate *bool `json:"autoUpdate,omitempty"`
}

func (s *Server) patchSession(c echo.Context, e *sessionEntry) error {
	var req patchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid session patch", err)
	}
	if req.AutoUpdate != nil {
		e.session.SetAutoUpdate(*req.AutoUpdate)
	}
	if err := e.session.Edit(req.Patch); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) switchLibrary(c echo.Context, e *sessionEntry) error {
	var req struct {
		Library string `json:"library"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid library request", err)
	}
	lib, err := model.ParseLibrary(req.Library)
	if err != nil {
		return &model.FieldError{Field: "library", Reason: err.Error()}
	}
	if err := e.session.SwitchLibrary(lib); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) setFamily(c echo.Context, e *sessionEntry) error {
	var req struct {
		Family model.Family `json:"family"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid family request", err)
	}
	if err := e.session.SetFamily(req.Family); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

// confirmed reads the confirm query parameter the browser adds after the user
// agreed to overwrite a working-set entry.
func confirmed(c echo.Context) (bool, error) {
	raw := c.QueryParam("confirm")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badRequest("confirm must be a boolean", err)
	}
	return v, nil
}

func (s *Server) selectIcon(c echo.Context, e *sessionEntry) error {
	var req struct {
		Icon string `json:"icon"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid select request", err)
	}
	ok, err := confirmed(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if ok {
		err = e.session.SelectIconConfirmed(ctx, req.Icon)
	} else {
		err = e.session.SelectIcon(ctx, req.Icon)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) swapColors(c echo.Context, e *sessionEntry) error {
	if err := e.session.SwapColors(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) zoom(c echo.Context, e *sessionEntry) error {
	var req struct {
		Action string  `json:"action"`
		DeltaY float64 `json:"deltaY"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid zoom request", err)
	}
	var z int
	switch req.Action {
	case "in":
		z = e.session.ZoomIn()
	case "out":
		z = e.session.ZoomOut()
	case "wheel":
		z = e.session.ZoomWheel(req.DeltaY)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "action must be in, out or wheel")
	}
	return c.JSON(http.StatusOK, map[string]int{"zoom": z})
}

func (s *Server) toggleEffect(c echo.Context, e *sessionEntry) error {
	effect := model.Effect(c.Param("effect"))
	active, err := e.session.ToggleEffect(effect)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"effect": effect, "active": active})
}

func (s *Server) preview(c echo.Context, e *sessionEntry) error {
	p, err := e.session.Preview()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"preview": p, "html": p.HTML()})
}

func (s *Server) css(c echo.Context, e *sessionEntry) error {
	css, err := e.session.CSS()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

func attachment(c echo.Context, name, contentType string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, body)
}

func (s *Server) theme(c echo.Context, e *sessionEntry) error {
	css, name, err := e.session.ThemeCSS()
	if err != nil {
		return err
	}
	return attachment(c, name, "text/css; charset=utf-8", []byte(css))
}

func (s *Server) png(c echo.Context, e *sessionEntry) error {
	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPNGSize {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("size must be between 1 and %d", maxPNGSize))
		}
		size = n
	}
	data, name, err := e.session.PNG(size)
	if err != nil {
		return err
	}
	return attachment(c, name, "image/png", data)
}

func (s *Server) listWorking(c echo.Context, e *sessionEntry) error {
	return c.JSON(http.StatusOK, e.session.Working().Entries())
}

func (s *Server) putWorking(c echo.Context, e *sessionEntry) error {
	ok, err := confirmed(c)
	if err != nil {
		return err
	}
	id, err := e.session.AddCurrent(ok)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (s *Server) exportWorking(c echo.Context, e *sessionEntry) error {
	css, name := e.session.ExportAll()
	return attachment(c, name, "text/css; charset=utf-8", []byte(css))
}

func (s *Server) loadWorking(c echo.Context, e *sessionEntry) error {
	ok, err := confirmed(c)
	if err != nil {
		return err
	}
	if ok {
		err = e.session.LoadWorkingConfirmed(c.Param("id"))
	} else {
		err = e.session.LoadWorking(c.Param("id"))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) removeWorking(c echo.Context, e *sessionEntry) error {
	if err := e.session.RemoveWorking(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listSaved(c echo.Context, e *sessionEntry) error {
	return c.JSON(http.StatusOK, e.session.SavedList(c.Request().Context()))
}

func (s *Server) saveCurrent(c echo.Context, e *sessionEntry) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid save request", err)
	}
	saved, err := e.session.SaveConfiguration(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, saved)
}

func (s *Server) loadSaved(c echo.Context, e *sessionEntry) error {
	if err := e.session.LoadSaved(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionView(c, e))
}

func (s *Server) deleteSaved(c echo.Context, e *sessionEntry) error {
	if err := e.session.DeleteSaved(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type autoSaveBody struct {
	AutoSave bool `json:"autoSave"`
}

func (s *Server) getAutoSave(c echo.Context, e *sessionEntry) error {
	return c.JSON(http.StatusOK, autoSaveBody{AutoSave: e.session.AutoSave(c.Request().Context())})
}

func (s *Server) putAutoSave(c echo.Context, e *sessionEntry) error {
	var req autoSaveBody
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid auto-save request", err)
	}
	if err := e.session.SetAutoSave(c.Request().Context(), req.AutoSave); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

func (s *Server) notifications(c echo.Context, e *sessionEntry) error {
	return c.JSON(http.StatusOK, e.notes.Drain())
}
