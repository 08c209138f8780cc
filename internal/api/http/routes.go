package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-report/internal/exercise"
	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

var validate = validator.New()

// generateTimeout bounds an on-demand report generation.
const generateTimeout = 30 * time.Second

// RangeFunc resolves the default report period.
type RangeFunc func(now time.Time) (weather.DateRange, error)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultRange RangeFunc) {
	v1 := app.Group("/api/v1")

	v1.Post("/reports", func(c *fiber.Ctx) error {
		rng, err := parseReportRange(c, defaultRange)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), generateTimeout)
		defer cancel()

		run, err := service.Generate(ctx, rng)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrMissingData), errors.Is(err, weather.ErrInvalidData):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			default:
				return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
			}
		}

		c.Set("Location", "/api/v1/reports/"+run.ID)
		return c.Status(fiber.StatusCreated).JSON(report.NewDocument(run))
	})

	v1.Get("/reports/latest", func(c *fiber.Ctx) error {
		run, err := service.Latest()
		if err != nil {
			return notFoundOr500(err, "no weather report generated yet")
		}
		return c.JSON(report.NewDocument(run))
	})

	v1.Get("/reports/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid report id")
		}

		run, err := service.Get(id)
		if err != nil {
			return notFoundOr500(err, "no weather report with this id")
		}
		return c.JSON(report.NewDocument(run))
	})

	v1.Get("/reports", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		runs, err := service.Range(req.From, req.To)
		if err != nil {
			return notFoundOr500(err, "no weather report for requested range")
		}

		summaries := make([]runSummary, 0, len(runs))
		for _, r := range runs {
			summaries = append(summaries, summarize(r))
		}

		return c.JSON(fiber.Map{
			"from":    req.From,
			"to":      req.To,
			"reports": summaries,
		})
	})

	v1.Get("/exercise/parity", func(c *fiber.Ctx) error {
		n, err := strconv.Atoi(c.Query("n"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "n must be an integer")
		}
		return c.JSON(fiber.Map{
			"n":    n,
			"even": exercise.IsEven(n),
		})
	})

	v1.Get("/exercise/minutes", func(c *fiber.Ctx) error {
		raw := c.Context().QueryArgs().PeekMulti("m")
		if len(raw) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one m query parameter is required")
		}

		minutes := make([]int, 0, len(raw))
		for _, b := range raw {
			m, err := strconv.Atoi(string(b))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "m must be an integer")
			}
			minutes = append(minutes, m)
		}

		return c.JSON(fiber.Map{
			"minutes":     minutes,
			"conversions": exercise.ConvertMinutesList(minutes),
		})
	})
}

func notFoundOr500(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather reports")
}

// runSummary is the history listing entry for one run.
type runSummary struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Source      string    `json:"source"`
	StartDate   string    `json:"date_debut"`
	EndDate     string    `json:"date_fin"`
	Days        int       `json:"nombre_jours"`
	Mean        float64   `json:"temperature_moyenne_totale"`
}

func summarize(r weather.Run) runSummary {
	return runSummary{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt,
		Source:      r.Source,
		StartDate:   r.Report.Period.FirstDate,
		EndDate:     r.Report.Period.LastDate,
		Days:        r.Report.Period.DayCount,
		Mean:        r.Report.Period.Mean,
	}
}

func parseReportRange(c *fiber.Ctx, defaultRange RangeFunc) (weather.DateRange, error) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	switch {
	case start == "" && end == "":
		return defaultRange(time.Now())
	case start == "" || end == "":
		return weather.DateRange{}, errors.New("start_date and end_date must be given together")
	}
	return weather.ParseDateRange(start, end)
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
