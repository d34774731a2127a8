package service

import (
	"github.com/ncordova/vinoteca/internal/domain"
)

// Catalog errors - use domain.ENOTFOUND
var (
	ErrProductNotFound   = domain.Errorf(domain.ENOTFOUND, "", "Producto no encontrado")
	ErrPromotionNotFound = domain.Errorf(domain.ENOTFOUND, "", "Promoción no encontrada")
	ErrCartItemNotFound  = domain.Errorf(domain.ENOTFOUND, "", "El producto no está en el carrito")
	ErrOrderNotFound     = domain.Errorf(domain.ENOTFOUND, "", "Orden no encontrada")
)

// Validation errors - use domain.EINVALID
var (
	ErrInvalidQuantity = domain.Errorf(domain.EINVALID, "", "La cantidad debe ser mayor a 0")
	ErrInvalidDiscount = domain.Errorf(domain.EINVALID, "", "El descuento debe estar entre 0 y 100")
)
