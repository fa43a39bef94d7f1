package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
)

var validate = validator.New()

// bindBody decodifica el JSON y aplica las reglas `validate`. nil si todo está bien.
func bindBody(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// bindQuery igual que bindBody para parámetros de consulta.
func bindQuery(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.QueryParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"}
	}
	return validateStruct(out)
}

func validateStruct(out any) *dto.ErrorResponse {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return &dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos: " + strings.Join(fields, ", ")}
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
}

// parseDateRange interpreta from/to como YYYY-MM-DD en hora local; to es inclusivo.
func parseDateRange(from, to string) (*time.Time, *time.Time, *dto.ErrorResponse) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return nil, nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"}
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return nil, nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"}
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}
