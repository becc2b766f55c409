package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	customerdomain "github.com/coopaguas/facturador/internal/customer/domain"
	"github.com/gin-gonic/gin"
)

// upsertCustomerRequest mirrors the JSON the frontend sends for both
// create and full update.
type upsertCustomerRequest struct {
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	TaxID      string `json:"dni_o_cuit"`
	Email      string `json:"email"`
	Phone      string `json:"telefono"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
	PostalCode string `json:"codigo_postal"`
	ZoneID     string `json:"zona_id"`
}

func (r upsertCustomerRequest) toDomain() customerdomain.UpsertCustomerRequest {
	return customerdomain.UpsertCustomerRequest{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		TaxID:      strings.TrimSpace(r.TaxID),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
		Address:    strings.TrimSpace(r.Address),
		City:       strings.TrimSpace(r.City),
		PostalCode: strings.TrimSpace(r.PostalCode),
		ZoneID:     strings.TrimSpace(r.ZoneID),
	}
}

func (s *Server) ListCustomers(c *gin.Context) {
	rows, err := s.customerSvc.ListActive(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) ListAllCustomers(c *gin.Context) {
	rows, err := s.customerSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	row, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req upsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, customerdomain.ErrMissingFields)
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cliente creado exitosamente",
		"cliente": resp,
	})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req upsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, customerdomain.ErrMissingFields)
		return
	}

	_, err := s.customerSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.toDomain())
	if err != nil {
		if errors.Is(err, customerdomain.ErrDuplicateTaxID) {
			err = errTaxIDConflictOnUpdate
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cliente actualizado exitosamente",
	})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	err := s.customerSvc.HardDelete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cliente eliminado exitosamente",
	})
}

func (s *Server) RestoreCustomer(c *gin.Context) {
	err := s.customerSvc.Restore(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cliente restaurado exitosamente",
	})
}

func (s *Server) DeactivateCustomer(c *gin.Context) {
	err := s.customerSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cliente desactivado exitosamente",
	})
}

func (s *Server) CleanupCustomers(c *gin.Context) {
	result, err := s.customerSvc.Cleanup(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if result.Removed == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":    "No hay clientes desactivados para eliminar",
			"eliminados": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("%d clientes eliminados permanentemente", result.Removed),
		"eliminados": result.Removed,
		"clientes":   result.Customers,
	})
}
