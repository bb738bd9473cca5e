package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gourd/entities"
	"gourd/pkg/notify"
	"gourd/pkg/plant/repository"
	"gourd/pkg/plant/service"
	"gourd/pkg/report"
)

type PlantCtrl struct{ svc service.PlantService }

func New(svc service.PlantService) *PlantCtrl { return &PlantCtrl{svc} }

func uid(c echo.Context) string { return c.Get("uid").(string) }

func plantID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}

func fail(c echo.Context, err error) error {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Msg})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "plant not found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

type createReq struct {
	Species     string `json:"species"`
	DatePlanted string `json:"date_planted"`
	Gender      string `json:"gender"`
	Note        string `json:"note"`
}

func (h *PlantCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	planted, err := time.Parse("2006-01-02", req.DatePlanted)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date_planted must be YYYY-MM-DD"})
	}
	v, err := h.svc.Create(uid(c), service.CreateInput{
		Species:     entities.Species(req.Species),
		DatePlanted: planted,
		Gender:      entities.Gender(req.Gender),
		InitialNote: req.Note,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *PlantCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	q := repository.ListQuery{
		Status:  entities.Status(c.QueryParam("status")),
		Species: entities.Species(c.QueryParam("species")),
		Sort:    c.QueryParam("sort"),
		Page:    page,
		Limit:   limit,
	}
	vs, total, err := h.svc.List(uid(c), q)
	if err != nil {
		return fail(c, err)
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	pages := (total + int64(q.Limit) - 1) / int64(q.Limit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": vs,
		"pagination": map[string]interface{}{
			"page": q.Page, "limit": q.Limit, "total": total, "pages": pages,
		},
	})
}

func (h *PlantCtrl) Get(c echo.Context) error {
	v, err := h.svc.Get(uid(c), plantID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type updateReq struct {
	Gender         *string `json:"gender"`
	Status         *string `json:"status"`
	DatePollinated *string `json:"date_pollinated"`
}

func (h *PlantCtrl) Update(c echo.Context) error {
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var in service.UpdateInput
	if req.Gender != nil {
		g := entities.Gender(*req.Gender)
		in.Gender = &g
	}
	if req.Status != nil {
		st := entities.Status(*req.Status)
		in.Status = &st
	}
	if req.DatePollinated != nil {
		d, err := time.Parse("2006-01-02", *req.DatePollinated)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date_pollinated must be YYYY-MM-DD"})
		}
		in.DatePollinated = &d
	}
	v, err := h.svc.Update(uid(c), plantID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(uid(c), plantID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlantCtrl) Flowering(c echo.Context) error {
	var req struct {
		Gender string `json:"gender"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	v, err := h.svc.MarkFlowering(uid(c), plantID(c), entities.Gender(req.Gender))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) Pollinate(c echo.Context) error {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var date *time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		}
		date = &d
	}
	v, err := h.svc.MarkPollinated(uid(c), plantID(c), date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) AddNote(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
		Kind    string `json:"kind"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	n, err := h.svc.AddNote(uid(c), plantID(c), req.Content, entities.NoteKind(req.Kind))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *PlantCtrl) SetImage(c echo.Context) error {
	var req struct {
		URL       string `json:"url"`
		StorageID string `json:"storage_id"`
		Caption   string `json:"caption"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image url is required"})
	}
	v, err := h.svc.SetImage(uid(c), plantID(c), entities.Image{URL: req.URL, StorageID: req.StorageID, Caption: req.Caption})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) DeleteImage(c echo.Context) error {
	v, err := h.svc.RemoveImage(uid(c), plantID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) Outcome(c echo.Context) error {
	var req struct {
		Outcome string `json:"outcome"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	v, err := h.svc.RecordOutcome(uid(c), plantID(c), entities.OutcomeKind(req.Outcome))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) Harvest(c echo.Context) error {
	v, err := h.svc.MarkHarvested(uid(c), plantID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlantCtrl) Attention(c echo.Context) error {
	vs, err := h.svc.Attention(uid(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, vs)
}

func (h *PlantCtrl) Upcoming(c echo.Context) error {
	vs, err := h.svc.Upcoming(uid(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, vs)
}

func (h *PlantCtrl) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(uid(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *PlantCtrl) Types(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.PlantTypes())
}

func (h *PlantCtrl) Export(c echo.Context) error {
	// page through until the full collection is in hand so large gardens
	// are not silently truncated
	var vs []service.PlantView
	for page := 1; ; page++ {
		batch, total, err := h.svc.List(uid(c), repository.ListQuery{Sort: "oldest", Page: page, Limit: 500})
		if err != nil {
			return fail(c, err)
		}
		vs = append(vs, batch...)
		if len(batch) == 0 || int64(len(vs)) >= total {
			break
		}
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plants.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return report.WritePlants(c.Response(), vs)
}

func (h *PlantCtrl) Notifications(c echo.Context) error {
	ns, err := h.svc.PendingNotifications(uid(c))
	if err != nil {
		return fail(c, err)
	}
	if ns == nil {
		ns = []notify.Notification{}
	}
	return c.JSON(http.StatusOK, ns)
}

func (h *PlantCtrl) NotificationSent(c echo.Context) error {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.MarkNotificationSent(uid(c), plantID(c), req.Kind); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}
