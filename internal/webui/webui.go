// Package webui 提供基于表单的笔记客户端界面
package webui

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/haierkeys/simple-note-service/internal/middleware"
	"github.com/haierkeys/simple-note-service/pkg/client"
	"github.com/haierkeys/simple-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// PageTitle 页面标题
	PageTitle = "Notes App"

	flashSuccess = "success"
	flashError   = "error"
)

// noteForm 表单字段，校验交给后端
type noteForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
	Creator string `form:"creator"`
}

func (f noteForm) input() client.NoteInput {
	in := client.NoteInput{Title: f.Title, Content: f.Content}
	if c := strings.TrimSpace(f.Creator); c != "" {
		in.Creator = &c
	}
	return in
}

type pageData struct {
	Title     string
	Flash     string
	FlashKind string
	Notes     []client.Note
	LoadError bool
}

// Server 表单客户端
type Server struct {
	api     *client.Client
	logger  *zap.Logger
	timeout time.Duration
}

// New 创建表单客户端，api 指向后端服务
func New(api *client.Client, lg *zap.Logger, timeout time.Duration) *Server {
	if lg == nil {
		lg = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return &Server{api: api, logger: lg, timeout: timeout}
}

// Router 创建表单客户端路由
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(s.logger))
	r.Use(middleware.AccessLogWithLogger(s.logger))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.index)
	r.POST("/notes", s.create)
	r.POST("/notes/:id/update", s.update)
	r.POST("/notes/:id/delete", s.remove)

	return r, nil
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

func (s *Server) index(c *gin.Context) {
	data := pageData{
		Title:     PageTitle,
		Flash:     c.Query("flash"),
		FlashKind: flashSuccess,
	}
	if c.Query("kind") == flashError {
		data.FlashKind = flashError
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	notes, err := s.api.List(ctx)
	if err != nil {
		s.logger.Warn("webui list notes failed", zap.String(logger.FieldError, err.Error()))
		data.LoadError = true
	}
	data.Notes = notes

	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) create(c *gin.Context) {
	var form noteForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debug("webui.create bind err", zap.Error(err))
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	if _, err := s.api.Create(ctx, form.input()); err != nil {
		s.redirect(c, errorText(err), flashError)
		return
	}
	s.redirect(c, "Note created!", flashSuccess)
}

func (s *Server) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.redirect(c, "Error: invalid note id", flashError)
		return
	}
	var form noteForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Debug("webui.update bind err", zap.Error(err), zap.Int64("id", id))
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	if _, err := s.api.Update(ctx, id, form.input()); err != nil {
		s.redirect(c, errorText(err), flashError)
		return
	}
	s.redirect(c, "Note updated!", flashSuccess)
}

func (s *Server) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.redirect(c, "Error: invalid note id", flashError)
		return
	}

	ctx, cancel := s.ctx(c)
	defer cancel()

	if _, err := s.api.Delete(ctx, id); err != nil {
		s.redirect(c, errorText(err), flashError)
		return
	}
	s.redirect(c, "Note deleted!", flashSuccess)
}

// redirect 提交后重定向回首页并带上提示信息
func (s *Server) redirect(c *gin.Context, flash, kind string) {
	q := url.Values{}
	q.Set("flash", flash)
	q.Set("kind", kind)
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Detail
	}
	return "Error: " + err.Error()
}
