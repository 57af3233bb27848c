package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/db"
	"github.com/example/blog-platform/internal/search"
	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/session"
	"github.com/example/blog-platform/internal/transport/http/handlers"
	"github.com/example/blog-platform/internal/transport/http/middleware"
	"github.com/example/blog-platform/web"
)

type Router = *gin.Engine

func NewRouter(cfg *config.Config, database *db.Database, sessions session.Store, es *search.Elastic) Router {
	r := gin.New()
	r.Use(gin.Recovery(), countRequests())
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// a nil *Elastic must stay a nil Indexer
	var indexer search.Indexer
	if es != nil {
		indexer = es
	}

	posts := service.NewPostService(database, cfg, indexer)
	comments := service.NewCommentService(database)
	profiles := service.NewProfileService(database)
	accounts := service.NewAccountService(database, sessions)

	postHandler := handlers.NewPostHandler(cfg, posts, comments)
	commentHandler := handlers.NewCommentHandler(comments, posts)
	profileHandler := handlers.NewProfileHandler(profiles)
	authHandler := handlers.NewAuthHandler(accounts, cfg.SessionTTLSec)
	searchHandler := handlers.NewSearchHandler(es)

	r.Use(middleware.CurrentUser(accounts))

	r.GET("/", postHandler.Index)
	r.GET("/posts/:id/", postHandler.Detail)
	r.GET("/category/:slug/", postHandler.Category)
	r.GET("/profile/:username/", profileHandler.View)
	r.GET("/search", searchHandler.Search)

	r.GET("/auth/signup/", authHandler.SignupForm)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.LoginForm)
	r.POST("/auth/login/", authHandler.Login)
	r.GET("/auth/logout/", authHandler.Logout)

	authed := r.Group("/", middleware.RequireAuth())
	authed.GET("/profile/edit/", profileHandler.EditForm)
	authed.POST("/profile/edit/", profileHandler.Edit)
	authed.GET("/posts/create/", postHandler.CreateForm)
	authed.POST("/posts/create/", postHandler.Create)
	authed.GET("/posts/:id/edit/", postHandler.EditForm)
	authed.POST("/posts/:id/edit/", postHandler.Update)
	authed.GET("/posts/:id/delete/", postHandler.DeleteForm)
	authed.POST("/posts/:id/delete/", postHandler.Delete)
	authed.POST("/posts/:id/comment/", commentHandler.Add)
	authed.GET("/posts/:id/edit_comment/:comment_id/", commentHandler.EditForm)
	authed.POST("/posts/:id/edit_comment/:comment_id/", commentHandler.Edit)
	authed.GET("/posts/:id/delete_comment/:comment_id/", commentHandler.DeleteForm)
	authed.POST("/posts/:id/delete_comment/:comment_id/", commentHandler.Delete)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
