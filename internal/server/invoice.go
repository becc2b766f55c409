package server

import (
	"net/http"
	"strings"

	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createInvoiceRequest struct {
	CustomerID    string          `json:"cliente_id"`
	ReadingID     string          `json:"lectura_id"`
	Number        string          `json:"numero_factura"`
	DueAt         string          `json:"fecha_vencimiento"`
	PeriodStart   string          `json:"periodo_facturado_inicio"`
	PeriodEnd     string          `json:"periodo_facturado_fin"`
	Consumption   decimal.Decimal `json:"consumo_m3"`
	BaseTariff    decimal.Decimal `json:"tarifa_basica"`
	ExcessTariff  decimal.Decimal `json:"tarifa_exceso"`
	Discounts     decimal.Decimal `json:"descuentos"`
	Surcharges    decimal.Decimal `json:"recargos"`
	Taxes         decimal.Decimal `json:"impuestos"`
	PaymentMethod string          `json:"metodo_pago"`
	Notes         string          `json:"observaciones"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	rows, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	detail, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) ListInvoicesByCustomer(c *gin.Context) {
	rows, err := s.invoiceSvc.ListByCustomer(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invoicedomain.ErrMissingFields)
		return
	}

	dueAt, err := parseDate(req.DueAt)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrMissingFields)
		return
	}

	periodStart, err := parseOptionalDate(req.PeriodStart)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrMissingFields)
		return
	}

	periodEnd, err := parseOptionalDate(req.PeriodEnd)
	if err != nil {
		AbortWithError(c, invoicedomain.ErrMissingFields)
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		ReadingID:     strings.TrimSpace(req.ReadingID),
		Number:        strings.TrimSpace(req.Number),
		DueAt:         dueAt,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Consumption:   req.Consumption,
		BaseTariff:    req.BaseTariff,
		ExcessTariff:  req.ExcessTariff,
		Discounts:     req.Discounts,
		Surcharges:    req.Surcharges,
		Taxes:         req.Taxes,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Notes:         strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Factura creada exitosamente",
		"factura": resp,
	})
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Factura marcada como pagada",
		"factura": resp,
	})
}
