package server

import (
	"net/http"
	"strings"
	"time"

	paymentdomain "github.com/coopaguas/facturador/internal/payment/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type registerPaymentRequest struct {
	InvoiceID string          `json:"factura_id"`
	PaidAt    string          `json:"fecha_pago"`
	Amount    decimal.Decimal `json:"monto_pagado"`
	Method    string          `json:"metodo_pago"`
	Notes     string          `json:"observaciones"`
}

func (s *Server) ListPayments(c *gin.Context) {
	rows, err := s.paymentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) RegisterPayment(c *gin.Context) {
	var req registerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, paymentdomain.ErrMissingFields)
		return
	}

	var paidAt time.Time
	if strings.TrimSpace(req.PaidAt) != "" {
		parsed, err := parseDate(req.PaidAt)
		if err != nil {
			AbortWithError(c, paymentdomain.ErrMissingFields)
			return
		}
		paidAt = parsed
	}

	resp, err := s.paymentSvc.Register(c.Request.Context(), paymentdomain.RegisterPaymentRequest{
		InvoiceID: strings.TrimSpace(req.InvoiceID),
		PaidAt:    paidAt,
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Notes:     strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pago registrado correctamente",
		"pago":    resp,
	})
}
