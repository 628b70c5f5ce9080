package httpapi

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/httpapi/utils"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/points"
	"github.com/semafind/closepairs/session"
)

type Handlers struct {
	cfg     HttpApiConfig
	manager *session.Manager
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ---------------------------

type CatalogResponse struct {
	Vectors []models.Vector `json:"vectors"`
	MaxN    int             `json:"maxN"`
}

func (h *Handlers) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{Vectors: catalog.All(), MaxN: catalog.MaxN})
}

type PointsQuery struct {
	N int `form:"n" binding:"min=0,max=12"`
}

type PointsResponse struct {
	N              int                `json:"n"`
	Points         []models.Point     `json:"points"`
	ClosePairs     []models.ClosePair `json:"closePairs"`
	ClosePairCount int                `json:"closePairCount"`
	MaxExtent      float64            `json:"maxExtent"`
}

// GetPoints computes the point set and close pairs for n without a session.
func (h *Handlers) GetPoints(c *gin.Context) {
	var q PointsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gen := h.manager.Generator()
	resp := PointsResponse{
		N:              q.N,
		Points:         gen.Points(q.N),
		ClosePairs:     gen.ClosePairs(q.N),
		ClosePairCount: points.ClosePairCount(q.N),
		MaxExtent:      gen.FullExtent(),
	}
	utils.EncodeAccept(c.Writer, c.Request, http.StatusOK, resp)
}

// ---------------------------

func (h *Handlers) CreateSession(c *gin.Context) {
	s, err := h.manager.Create()
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, s.State())
	case errors.Is(err, session.ErrTooManySessions):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		log.Error().Err(err).Msg("CreateSession failed")
	}
}

func (h *Handlers) GetSession(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	c.JSON(http.StatusOK, s.State())
}

func (h *Handlers) DeleteSession(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	if err := h.manager.Delete(s.Id); err != nil {
		// Another request may have removed it in the meantime
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// ---------------------------

type SetNRequest struct {
	N *int `json:"n"`
}

func (r SetNRequest) Validate() error {
	if r.N == nil {
		return fmt.Errorf("n is required")
	}
	if *r.N < 0 || *r.N > catalog.MaxN {
		return fmt.Errorf("n must be between 0 and %d, got %d", catalog.MaxN, *r.N)
	}
	return nil
}

type WheelRequest struct {
	DeltaY float64 `json:"deltaY"`
}

func (r WheelRequest) Validate() error {
	if !isFinite(r.DeltaY) {
		return fmt.Errorf("deltaY must be finite")
	}
	return nil
}

// Pointer positions are screen pixels, anything beyond this is not a pointer.
const maxPointerCoordinate = 1e6

type PointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (r PointerRequest) Validate() error {
	if !isFinite(r.X, r.Y) {
		return fmt.Errorf("pointer position must be finite")
	}
	if math.Abs(r.X) > maxPointerCoordinate || math.Abs(r.Y) > maxPointerCoordinate {
		return fmt.Errorf("pointer position (%v, %v) is out of range ±%v", r.X, r.Y, maxPointerCoordinate)
	}
	return nil
}

type ResizeRequest struct {
	WindowWidth  float64 `json:"windowWidth"`
	WindowHeight float64 `json:"windowHeight"`
}

func (r ResizeRequest) Validate() error {
	if !isFinite(r.WindowWidth, r.WindowHeight) || r.WindowWidth <= 0 || r.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", r.WindowWidth, r.WindowHeight)
	}
	return nil
}

// gesture decodes the request body and applies it to the session in the
// context, replying with the new state.
func gesture[T utils.Validator](c *gin.Context, apply func(s *session.Session, req T) session.State) {
	req, err := utils.DecodeValid[T](c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := c.MustGet("session").(*session.Session)
	c.JSON(http.StatusOK, apply(s, req))
}

func (h *Handlers) SetN(c *gin.Context) {
	gesture(c, func(s *session.Session, req SetNRequest) session.State { return s.SetN(*req.N) })
}

func (h *Handlers) Wheel(c *gin.Context) {
	gesture(c, func(s *session.Session, req WheelRequest) session.State { return s.Wheel(req.DeltaY) })
}

func (h *Handlers) DragStart(c *gin.Context) {
	gesture(c, func(s *session.Session, req PointerRequest) session.State { return s.DragStart(req.X, req.Y) })
}

func (h *Handlers) DragMove(c *gin.Context) {
	gesture(c, func(s *session.Session, req PointerRequest) session.State { return s.DragMove(req.X, req.Y) })
}

func (h *Handlers) Resize(c *gin.Context) {
	gesture(c, func(s *session.Session, req ResizeRequest) session.State {
		return s.Resize(req.WindowWidth, req.WindowHeight)
	})
}

func (h *Handlers) DragEnd(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	c.JSON(http.StatusOK, s.DragEnd())
}

func (h *Handlers) PointerLeave(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	c.JSON(http.StatusOK, s.PointerLeave())
}

func (h *Handlers) Reset(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	c.JSON(http.StatusOK, s.Reset())
}

// ---------------------------

func (h *Handlers) GetScene(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	utils.EncodeAccept(c.Writer, c.Request, http.StatusOK, s.Scene())
}

func (h *Handlers) RenderSVG(c *gin.Context) {
	s := c.MustGet("session").(*session.Session)
	doc, err := s.SVG()
	if err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		log.Error().Err(err).Str("id", s.Id.String()).Msg("RenderSVG failed")
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", doc)
}
