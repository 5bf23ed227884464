package httpapi

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-search/internal/search"
	"github.com/i474232898/weather-search/internal/store"
	"github.com/i474232898/weather-search/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// The merger serves stateless suggestion queries; the session holds the
// interactive search state.
func RegisterRoutes(app *fiber.App, merger *search.Merger, session *search.Session) {
	v1 := app.Group("/api/v1")

	v1.Get("/suggestions", func(c *fiber.Ctx) error {
		q := c.Query("q")
		items := merger.Suggest(c.UserContext(), q)
		if items == nil {
			items = []string{}
		}
		return c.JSON(fiber.Map{
			"query":       q,
			"suggestions": items,
		})
	})

	v1.Get("/input", func(c *fiber.Ctx) error {
		return c.JSON(session.Suggestions())
	})

	v1.Post("/input", func(c *fiber.Ctx) error {
		var req inputRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		session.Input(req.Text)
		return c.Status(fiber.StatusAccepted).JSON(session.Suggestions())
	})

	v1.Post("/input/escape", func(c *fiber.Ctx) error {
		session.Escape()
		return c.JSON(session.Suggestions())
	})

	v1.Post("/input/focus", func(c *fiber.Ctx) error {
		session.Focus()
		return c.JSON(session.Suggestions())
	})

	v1.Post("/submit", func(c *fiber.Ctx) error {
		res, err := session.Submit(searchContext(c))
		if err != nil {
			if errors.Is(err, search.ErrEmptyQuery) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return err
		}
		return respondWithResult(c, session, res)
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		return respondWithResult(c, session, session.Search(searchContext(c), req.Place))
	})

	v1.Post("/suggestions/select", func(c *fiber.Ctx) error {
		var req selectSuggestionRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		return respondWithResult(c, session, session.SelectSuggestion(searchContext(c), req.Suggestion))
	})

	v1.Get("/recent", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"recent": session.View().Recent,
		})
	})

	v1.Post("/recent/:index/select", func(c *fiber.Ctx) error {
		idx, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "index must be an integer")
		}

		res, err := session.SelectRecent(searchContext(c), idx)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no recent search at requested index")
			}
			return err
		}
		return respondWithResult(c, session, res)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return c.JSON(newViewResponse(session.View()))
	})
}

type inputRequest struct {
	Text string `json:"text"`
}

type searchRequest struct {
	Place string `json:"place" validate:"required"`
}

type selectSuggestionRequest struct {
	Suggestion string `json:"suggestion" validate:"required"`
}

func bindAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// searchContext keeps the request values but not its cancellation: a
// dispatched provider lookup is never cancelled.
func searchContext(c *fiber.Ctx) context.Context {
	return context.WithoutCancel(c.UserContext())
}

func respondWithResult(c *fiber.Ctx, session *search.Session, res search.Result) error {
	status := fiber.StatusOK
	if res.Outcome == search.OutcomeFailed {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"cycleId": res.CycleID,
		"outcome": res.Outcome.String(),
		"view":    newViewResponse(session.View()),
	})
}

// conditionsResponse adds display units to the raw conditions.
type conditionsResponse struct {
	Place        string            `json:"place"`
	Condition    weather.Condition `json:"condition"`
	Description  string            `json:"description"`
	Temperature  int               `json:"temperatureC"`
	TempMin      int               `json:"tempMinC"`
	TempMax      int               `json:"tempMaxC"`
	FeelsLike    int               `json:"feelsLikeC"`
	Humidity     int               `json:"humidityPercent"`
	Pressure     int               `json:"pressureHpa"`
	VisibilityKM float64           `json:"visibilityKm"`
	WindSpeedKMH int               `json:"windSpeedKmh"`
}

type dailyResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	conditionsResponse
}

type viewResponse struct {
	Query              string              `json:"query"`
	Suggestions        []string            `json:"suggestions"`
	SuggestionsVisible bool                `json:"suggestionsVisible"`
	Loading            bool                `json:"loading"`
	Error              string              `json:"error,omitempty"`
	Current            *conditionsResponse `json:"current,omitempty"`
	Daily              []dailyResponse     `json:"daily"`
	Recent             []string            `json:"recent"`
}

func newViewResponse(v search.View) viewResponse {
	resp := viewResponse{
		Query:              v.Query,
		Suggestions:        v.Suggestions,
		SuggestionsVisible: v.Visible,
		Loading:            v.Loading,
		Error:              v.Error,
		Daily:              make([]dailyResponse, 0, len(v.Daily)),
		Recent:             v.Recent,
	}
	if v.Conditions != nil {
		cr := newConditionsResponse(*v.Conditions)
		resp.Current = &cr
	}
	for _, d := range v.Daily {
		resp.Daily = append(resp.Daily, dailyResponse{
			Date:               d.Date,
			Weekday:            weekday(d.Date),
			conditionsResponse: newConditionsResponse(d.Sample.Conditions),
		})
	}
	return resp
}

func newConditionsResponse(c weather.Conditions) conditionsResponse {
	return conditionsResponse{
		Place:        c.Place.Label(),
		Condition:    c.Condition,
		Description:  cases.Title(language.English).String(c.Description),
		Temperature:  c.RoundedTemperature(),
		TempMin:      round(c.TempMin),
		TempMax:      round(c.TempMax),
		FeelsLike:    round(c.FeelsLike),
		Humidity:     c.Humidity,
		Pressure:     c.Pressure,
		VisibilityKM: math.Round(c.VisibilityKM()*10) / 10,
		WindSpeedKMH: round(c.WindSpeedKMH()),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// weekday returns the English weekday name for a YYYY-MM-DD date.
func weekday(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}
