package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidParameter = errors.New("parámetro fiscal o de línea inválido")
	ErrEmptyInvoice     = errors.New("la factura no tiene líneas")
	ErrContentOverflow  = errors.New("el contenido excede el área imprimible de la página")
)
