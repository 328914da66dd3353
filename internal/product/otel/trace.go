package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/lumiere-atelier/storefront/internal/common"
)

var Tracer = otel.Tracer(common.AppStorefront + "/product")
