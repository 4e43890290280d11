// Package httpserver exposes the offers API over HTTP.
package httpserver

import (
	"net/http"
	"strconv"

	"github.com/and161185/six-cities/internal/errs"
	"github.com/and161185/six-cities/internal/model"
	"github.com/and161185/six-cities/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BasePath prefixes every route.
const BasePath = "/six-cities"

// Server implements the REST handlers.
type Server struct {
	auth   service.AuthService
	offers service.OfferService
	log    *zap.Logger
}

// New wires services into a Server.
func New(auth service.AuthService, offers service.OfferService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{auth: auth, offers: offers, log: log}
}

// Handler builds the gin engine with middleware and routes.
func (s *Server) Handler() http.Handler {
	engine := gin.New()
	engine.Use(Logging(s.log), Recover(s.log))
	s.Register(engine.Group(BasePath))
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "not found"})
	})
	return engine
}

// Register mounts the routes on r.
func (s *Server) Register(r *gin.RouterGroup) {
	r.GET("/offers", s.listOffers)
	r.GET("/offers/:id", s.getOffer)
	r.GET("/offers/:id/nearby", s.nearby)
	r.GET("/comments/:id", s.comments)
	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.DELETE("/logout", s.logout)

	authed := r.Group("")
	authed.Use(RequireUser(s.auth))
	authed.GET("/login", s.checkAuth)
	authed.POST("/comments/:id", s.postComment)
}

func offerID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, errs.ErrNotFound)
		return 0, false
	}
	return id, true
}

func (s *Server) listOffers(c *gin.Context) {
	out, err := s.offers.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOffer(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	o, err := s.offers.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) nearby(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	out, err := s.offers.Nearby(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) comments(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	out, err := s.offers.Comments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) postComment(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}
	var p model.CommentPost
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, &errs.ValidationError{Msg: "malformed body"})
		return
	}
	u, _ := UserFromCtx(c.Request.Context())
	out, err := s.offers.PostComment(c.Request.Context(), id, u, p)
	if err != nil {
		writeError(c, err)
		return
	}
	s.log.Info("comment posted", zap.Int("offer", id), zap.String("user", u.ID.String()))
	c.JSON(http.StatusCreated, out)
}

func (s *Server) login(c *gin.Context) {
	var ad model.AuthData
	if err := c.ShouldBindJSON(&ad); err != nil || ad.Login == "" || ad.Password == "" {
		writeError(c, &errs.ValidationError{Msg: "email and password are required"})
		return
	}
	tok, u, err := s.auth.LoginWithIP(c.Request.Context(), ad.Login, ad.Password, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.UserData(tok.AccessToken))
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &errs.ValidationError{Msg: "malformed body"})
		return
	}
	ctx := c.Request.Context()
	if _, err := s.auth.Register(ctx, req.Email, req.Password, req.Name); err != nil {
		writeError(c, err)
		return
	}
	tok, u, err := s.auth.LoginWithIP(ctx, req.Email, req.Password, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.UserData(tok.AccessToken))
}

func (s *Server) checkAuth(c *gin.Context) {
	u, _ := UserFromCtx(c.Request.Context())
	c.JSON(http.StatusOK, u.UserData(c.GetString("token")))
}

// logout is a no-op for stateless tokens; the client drops its copy.
func (s *Server) logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
