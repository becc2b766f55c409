package server

import (
	"errors"
	"net/http"

	customerdomain "github.com/coopaguas/facturador/internal/customer/domain"
	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	paymentdomain "github.com/coopaguas/facturador/internal/payment/domain"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errTaxIDConflictOnUpdate distinguishes the update-path duplicate
// message ("otro cliente") from the create-path one.
var errTaxIDConflictOnUpdate = errors.New("duplicate_tax_id_on_update")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError translates domain sentinels to the status codes and Spanish
// messages the frontend matches on verbatim.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, zonedomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidID):
		return http.StatusBadRequest, "ID inválido"
	case errors.Is(err, customerdomain.ErrMissingFields):
		return http.StatusBadRequest, "Los campos nombre, apellido, DNI/CUIT y dirección son obligatorios"
	case errors.Is(err, customerdomain.ErrZoneNotFound):
		return http.StatusBadRequest, "La zona especificada no existe"
	case errors.Is(err, invoicedomain.ErrMissingFields):
		return http.StatusBadRequest, "Faltan campos obligatorios."
	case errors.Is(err, invoicedomain.ErrAlreadyPaid):
		return http.StatusBadRequest, "La factura ya está marcada como pagada"
	case errors.Is(err, paymentdomain.ErrMissingFields):
		return http.StatusBadRequest, "Factura y monto son obligatorios"
	case errors.Is(err, paymentdomain.ErrInvoiceAlreadyPaid):
		return http.StatusBadRequest, "La factura ya está pagada"
	case errors.Is(err, customerdomain.ErrNotInactive):
		return http.StatusNotFound, "Cliente no encontrado o ya está activo"
	case errors.Is(err, customerdomain.ErrNotFound):
		return http.StatusNotFound, "Cliente no encontrado"
	case errors.Is(err, zonedomain.ErrNotFound):
		return http.StatusNotFound, "Zona no encontrada"
	case errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrInvoiceNotFound):
		return http.StatusNotFound, "Factura no encontrada"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Registro no encontrado"
	case errors.Is(err, errTaxIDConflictOnUpdate):
		return http.StatusConflict, "Ya existe otro cliente con ese DNI/CUIT"
	case errors.Is(err, customerdomain.ErrDuplicateTaxID):
		return http.StatusConflict, "Ya existe un cliente con ese DNI/CUIT"
	case errors.Is(err, invoicedomain.ErrDuplicateNumber):
		return http.StatusConflict, "El número de factura ya existe"
	case errors.Is(err, customerdomain.ErrHasRelatedRows):
		return http.StatusConflict, "No se puede eliminar el cliente porque tiene registros relacionados (medidores, lecturas, etc.)"
	default:
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}

// classifyErrorForLog labels handler errors for the request log.
func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusBadRequest:
		return "validation_error", err.Error()
	case status == http.StatusNotFound:
		return "not_found", err.Error()
	case status == http.StatusConflict:
		return "conflict", err.Error()
	default:
		return "internal_error", err.Error()
	}
}
