// Package api serves the buffer store over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lil-go/internal/fn"
	"lil-go/pkg/bstr"
	"lil-go/pkg/buffers"
	"lil-go/pkg/errs"
	"lil-go/pkg/log"
	"lil-go/pkg/store"
	"lil-go/pkg/transform"
)

type BufferApi struct {
	Api           *echo.Echo
	Store         *store.Store
	DefaultBudget int
	Transform     transform.Transform // applied to snapshot downloads and uploads
}

// View is the JSON form of a buffer.
type View struct {
	Name      string `json:"name"`
	Budget    int    `json:"budget"`
	Len       int    `json:"len"`
	Cap       int    `json:"cap"`
	Available int    `json:"available"`
	Value     string `json:"value"`
	Truncated bool   `json:"truncated,omitempty"`
}

type putRequest struct {
	Budget int    `json:"budget"`
	Value  string `json:"value"`
}

type editRequest struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Value string `json:"value"`
	Fill  string `json:"fill"`
}

type popResponse struct {
	View
	Popped string `json:"popped"`
}

func NewBufferApi(st *store.Store, defaultBudget int, tr transform.Transform) *BufferApi {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if tr == nil {
		tr = transform.NewNoOpTransform()
	}
	a := &BufferApi{Api: e, Store: st, DefaultBudget: defaultBudget, Transform: tr}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Debug()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Dur("latency", v.Latency).Msg("api request")
			return nil
		},
	}))

	e.GET("/buffers", a.list)
	e.GET("/buffers/:name", a.get)
	e.PUT("/buffers/:name", a.put)
	e.DELETE("/buffers/:name", a.delete)
	e.POST("/buffers/:name/insert", a.edit(insert))
	e.POST("/buffers/:name/append", a.edit(appendOp))
	e.POST("/buffers/:name/erase", a.edit(erase))
	e.POST("/buffers/:name/push", a.edit(push))
	e.POST("/buffers/:name/clear", a.edit(clearOp))
	e.POST("/buffers/:name/pop", a.pop)
	e.GET("/snapshot", a.export)
	e.POST("/snapshot", a.importSnapshot)
	return a
}

// Run serves on addr until ctx is cancelled.
func (a *BufferApi) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- a.Api.Start(addr) }()
	log.Info().Str("addr", addr).Msg("api listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.Api.Shutdown(shutdownCtx)
	}
}

func viewOf(name string, b bstr.Buffer) View {
	return View{
		Name:      name,
		Budget:    bstr.Budget(b),
		Len:       b.Len(),
		Cap:       b.Cap(),
		Available: b.Available(),
		Value:     b.String(),
	}
}

// httpError maps store and buffer failures onto status codes.
func httpError(err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidName),
		errors.Is(err, errs.InvalidArgument),
		errors.Is(err, errs.OutOfRange),
		errors.Is(err, errs.InvalidFormat),
		errors.Is(err, errs.DecodeFail):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ResourceFull),
		errors.Is(err, errs.ResourceEmpty),
		errors.Is(err, errs.IllegalState):
		status = http.StatusConflict
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}

func (a *BufferApi) list(c echo.Context) error {
	entries, err := a.Store.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (a *BufferApi) get(c echo.Context) error {
	name := c.Param("name")
	b, err := a.Store.Get(c.Request().Context(), name)
	if err != nil {
		return httpError(err)
	}
	defer buffers.Put(b)
	key, _ := store.Key(name)
	return c.JSON(http.StatusOK, viewOf(key, b))
}

func (a *BufferApi) put(c echo.Context) error {
	var req putRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	b, err := buffers.Get(fn.Or(req.Budget, a.DefaultBudget))
	if err != nil {
		return httpError(err)
	}
	defer buffers.Put(b)
	b.AppendString(req.Value)

	name := c.Param("name")
	if err := a.Store.Put(c.Request().Context(), name, b); err != nil {
		return httpError(err)
	}
	key, _ := store.Key(name)
	v := viewOf(key, b)
	v.Truncated = b.Len() < len(req.Value)
	return c.JSON(http.StatusOK, v)
}

func (a *BufferApi) delete(c echo.Context) error {
	if err := a.Store.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type editFunc func(b bstr.Buffer, req editRequest) error

func insert(b bstr.Buffer, req editRequest) error {
	if req.Fill != "" {
		if len(req.Fill) != 1 {
			return errs.Errorf(errs.InvalidArgument, "fill must be a single byte, got %q", req.Fill)
		}
		b.InsertFill(req.Index, req.Count, req.Fill[0])
		return nil
	}
	b.InsertString(req.Index, req.Value)
	return nil
}

func appendOp(b bstr.Buffer, req editRequest) error {
	b.AppendString(req.Value)
	return nil
}

func erase(b bstr.Buffer, req editRequest) error {
	b.Erase(req.Index, req.Count)
	return nil
}

func push(b bstr.Buffer, req editRequest) error {
	if len(req.Value) != 1 {
		return errs.Errorf(errs.InvalidArgument, "push takes a single byte, got %q", req.Value)
	}
	return b.PushBack(req.Value[0])
}

func clearOp(b bstr.Buffer, _ editRequest) error {
	b.Clear()
	return nil
}

func (a *BufferApi) edit(op editFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req editRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		name := c.Param("name")
		b, err := a.Store.Update(c.Request().Context(), name, func(b bstr.Buffer) error {
			return op(b, req)
		})
		if err != nil {
			return httpError(err)
		}
		defer buffers.Put(b)
		key, _ := store.Key(name)
		return c.JSON(http.StatusOK, viewOf(key, b))
	}
}

func (a *BufferApi) pop(c echo.Context) error {
	var popped byte
	name := c.Param("name")
	b, err := a.Store.Update(c.Request().Context(), name, func(b bstr.Buffer) error {
		var err error
		popped, err = b.PopBack()
		return err
	})
	if err != nil {
		return httpError(err)
	}
	defer buffers.Put(b)
	key, _ := store.Key(name)
	return c.JSON(http.StatusOK, popResponse{View: viewOf(key, b), Popped: string([]byte{popped})})
}

func (a *BufferApi) export(c echo.Context) error {
	var buf bytes.Buffer
	if _, err := a.Store.Export(c.Request().Context(), &buf, a.Transform); err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, buf.Bytes())
}

func (a *BufferApi) importSnapshot(c echo.Context) error {
	n, err := a.Store.Import(c.Request().Context(), c.Request().Body, a.Transform)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"imported": n})
}
