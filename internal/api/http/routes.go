package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/vending-forecast/internal/forecast"
	"github.com/i474232898/vending-forecast/internal/machine"
	"github.com/i474232898/vending-forecast/internal/store"
	"github.com/i474232898/vending-forecast/internal/weather"
)

var validate = validator.New()

// Registry is the machine store the handlers work against.
type Registry interface {
	Create(in machine.Input) machine.Machine
	Get(id int64) (machine.Machine, error)
	Update(id int64, in machine.Input) (machine.Machine, error)
	Delete(id int64) error
	List() []machine.Machine
}

// Forecasts exposes the held weather forecast.
type Forecasts interface {
	Outlook() weather.Outlook
	Status() weather.Status
	Location() weather.Location
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, machines Registry, forecasts Forecasts) {
	v1 := app.Group("/api/v1")

	v1.Get("/machines", func(c *fiber.Ctx) error {
		return c.JSON(machines.List())
	})

	v1.Get("/machines/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		m, err := machines.Get(id)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(m)
	})

	v1.Post("/machines", func(c *fiber.Ctx) error {
		in, err := bindInput(c)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(machines.Create(in))
	})

	v1.Put("/machines/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		in, err := bindInput(c)
		if err != nil {
			return err
		}
		m, err := machines.Update(id, in)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(m)
	})

	v1.Delete("/machines/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := machines.Delete(id); err != nil {
			return storeError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		report := forecast.BuildReport(machines.List(), forecasts.Outlook())
		return c.JSON(fiber.Map{
			"weather":  forecasts.Status(),
			"location": forecasts.Location(),
			"report":   report,
		})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		f, ok := forecasts.Outlook().Forecast()
		if !ok {
			status := forecasts.Status()
			msg := weather.ErrNoForecast.Error()
			if status.Error != "" {
				msg = msg + ": " + status.Error
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, msg)
		}
		return c.JSON(fiber.Map{
			"location": forecasts.Location(),
			"status":   forecasts.Status(),
			"forecast": f,
		})
	})
}

// validationError renders per-field messages alongside the usual error body.
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string {
	return "invalid machine"
}

// ErrorHandler is the centralised Fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": verr.Error(),
			"fields":  verr.fields,
		})
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type machineIDParam struct {
	ID int64 `validate:"required,gt=0"`
}

func parseID(c *fiber.Ctx) (int64, error) {
	var p machineIDParam
	var err error
	if p.ID, err = strconv.ParseInt(c.Params("id"), 10, 64); err == nil {
		err = validate.Struct(p)
	}
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "machine id must be a positive integer")
	}
	return p.ID, nil
}

func bindInput(c *fiber.Ctx) (machine.Input, error) {
	var in machine.Input
	if err := c.BodyParser(&in); err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}

	valid, err := in.Validate()
	if err != nil {
		var merr *machine.ValidationError
		if errors.As(err, &merr) {
			return in, &validationError{fields: merr.Fields}
		}
		return in, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return valid, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "machine registry error")
}
